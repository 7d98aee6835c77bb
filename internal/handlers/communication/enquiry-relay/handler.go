// internal/handlers/communication/enquiry-relay/handler.go
package enquiryrelay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/common/metrics"
	"studio-growth/internal/common/observability"
	"studio-growth/internal/common/validation"
	"studio-growth/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	EndpointID = "communication.enquiry.relay"

	maxBodyBytes = 64 << 10
)

type Handler struct {
	config       *Config
	schema       *validation.Schema
	mailer       Mailer
	notifier     Notifier
	cooldown     CooldownStore
	obs          *observability.Observability
	errs         *apperrors.ErrorHandler
	logger       logger.Logger
	newReference func() string
}

// NewHandler wires the relay. notifier and obs may be nil; a nil cooldown
// store falls back to an in-process one.
func NewHandler(config *Config, reg *registry.EndpointRegistry, mailer Mailer, notifier Notifier,
	cooldown CooldownStore, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if mailer == nil {
		return nil, errors.New("mailer is required")
	}

	schemaMap, err := reg.InputSchema(EndpointID)
	if err != nil {
		return nil, fmt.Errorf("load input schema: %w", err)
	}
	schema, err := validation.Compile(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	if cooldown == nil {
		cooldown = NewMemoryCooldown()
	}

	log = log.WithFields(map[string]interface{}{
		"handler":  EndpointID,
		"provider": mailer.Provider(),
	})
	return &Handler{
		config:       config,
		schema:       schema,
		mailer:       mailer,
		notifier:     notifier,
		cooldown:     cooldown,
		obs:          obs,
		errs:         apperrors.NewErrorHandler(log),
		logger:       log,
		newReference: func() string { return uuid.New().String() },
	}, nil
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/enquiry", h.Relay)
}

// Relay handles POST /api/enquiry.
func (h *Handler) Relay(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.fail(c, apperrors.NewInvalidRequestBodyError(err.Error()))
		return
	}

	input, err := decodeInput(h.schema, body)
	if err != nil {
		h.fail(c, err)
		return
	}

	output, err := h.Execute(ctx, c.ClientIP(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Execute applies the submission rules in order and sends the email.
// clientKey identifies the submitter for the cooldown window.
func (h *Handler) Execute(ctx context.Context, clientKey string, input *Input) (*Output, error) {
	if err := checkSubmission(input); err != nil {
		return nil, err
	}

	if err := h.reserve(ctx, clientKey); err != nil {
		return nil, err
	}

	if !h.mailer.Configured() {
		return nil, apperrors.NewEmailNotConfiguredError(h.mailer.Provider())
	}

	reference := h.newReference()
	msg := &Message{
		From:      h.config.From,
		To:        h.config.Recipients,
		ReplyTo:   input.Email,
		Subject:   h.config.Subject,
		Text:      buildTextBody(input),
		Reference: reference,
	}

	sendCtx, cancel := h.withTimeout(ctx)
	defer cancel()

	messageID, err := h.send(sendCtx, msg)
	if err != nil {
		return nil, apperrors.NewEmailSendFailedError(h.mailer.Provider(), err)
	}

	h.logger.Info("enquiry relayed", map[string]interface{}{
		"reference":  reference,
		"messageId":  messageID,
		"hasLabData": input.GrowthLab != nil,
	})

	h.alert(ctx, input, reference)

	h.recordOutcome(ctx, metrics.OutcomeSent)
	return &Output{OK: true, Reference: reference}, nil
}

func (h *Handler) reserve(ctx context.Context, clientKey string) error {
	if h.config.Cooldown <= 0 {
		return nil
	}
	ok, remaining, err := h.cooldown.Reserve(ctx, clientKey, h.config.Cooldown)
	if err != nil {
		// Store outages must not block enquiries.
		h.logger.Warn("cooldown store unavailable", map[string]interface{}{"error": err})
		return nil
	}
	if !ok {
		return apperrors.NewSubmissionThrottledError(remaining)
	}
	return nil
}

func (h *Handler) send(ctx context.Context, msg *Message) (string, error) {
	ctx, span := h.obs.StartSpan(ctx, "enquiry.send",
		attribute.String("provider", h.mailer.Provider()),
		attribute.String("reference", msg.Reference),
	)
	defer span.End()

	start := time.Now()
	messageID, err := h.mailer.Send(ctx, msg)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	}
	metrics.EmailSendDuration.WithLabelValues(h.mailer.Provider(), status).Observe(elapsed.Seconds())
	h.obs.RecordSendDuration(ctx, h.mailer.Provider(), elapsed, status)

	return messageID, err
}

// alert notifies the studio of an Ideal Fit enquiry. Failures are logged only.
func (h *Handler) alert(ctx context.Context, input *Input, reference string) {
	if h.notifier == nil || !h.config.NotifyIdealFit {
		return
	}
	if input.GrowthLab == nil || strings.TrimSpace(input.GrowthLab.Fit) != idealFitLabel {
		return
	}

	notifyCtx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := h.notifier.Notify(notifyCtx, alertText(input, reference)); err != nil {
		h.logger.Warn("ideal fit alert failed", map[string]interface{}{
			"reference": reference,
			"error":     err,
		})
	}
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.config.Timeout)
}

func (h *Handler) fail(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	h.recordOutcome(c.Request.Context(), outcomeFor(stdErr.Code))

	if secs, ok := stdErr.Metadata["retryAfterSeconds"].(int); ok {
		c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
	}

	status, resp := h.errs.Handle(c.FullPath(), stdErr)
	c.JSON(status, resp)
}

func (h *Handler) recordOutcome(ctx context.Context, outcome string) {
	metrics.EnquiriesTotal.WithLabelValues(outcome).Inc()
	h.obs.RecordEnquiry(ctx, outcome)
}

func outcomeFor(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrCodeSpamDetected:
		return metrics.OutcomeSpam
	case apperrors.ErrCodeSubmissionThrottled:
		return metrics.OutcomeThrottled
	case apperrors.ErrCodeInvalidRequestBody, apperrors.ErrCodeValidationFailed:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}
