// internal/handlers/growth-lab/calculate-projection/handler.go
package calculateprojection

import (
	"context"
	"fmt"
	"io"
	"net/http"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/common/metrics"
	"studio-growth/internal/common/observability"
	"studio-growth/internal/common/validation"
	"studio-growth/internal/growthlab"
	"studio-growth/pkg/registry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const (
	EndpointID        = "growthlab.projection.calculate"
	OptionsEndpointID = "growthlab.options.list"

	maxBodyBytes = 16 << 10
)

type Handler struct {
	config *Config
	schema *validation.Schema
	obs    *observability.Observability
	errs   *apperrors.ErrorHandler
	logger logger.Logger
}

// NewHandler compiles the request schema registered for the endpoint.
// obs may be nil.
func NewHandler(config *Config, reg *registry.EndpointRegistry, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	schemaMap, err := reg.InputSchema(EndpointID)
	if err != nil {
		return nil, fmt.Errorf("load input schema: %w", err)
	}
	schema, err := validation.Compile(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	log = log.WithFields(map[string]interface{}{"handler": EndpointID})
	return &Handler{
		config: config,
		schema: schema,
		obs:    obs,
		errs:   apperrors.NewErrorHandler(log),
		logger: log,
	}, nil
}

// Register mounts the projection and options routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/growth-lab/projection", h.Calculate)
	r.GET("/api/growth-lab/options", h.Options)
}

// Calculate handles POST /api/growth-lab/projection.
func (h *Handler) Calculate(c *gin.Context) {
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

	output, err := h.Execute(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Options handles GET /api/growth-lab/options.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.options())
}

// Execute resolves defaults, checks the control domains and runs the engine.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, investment, services, err := h.resolve(input)
	if err != nil {
		return nil, err
	}

	_, span := h.obs.StartSpan(ctx, "growthlab.project",
		attribute.String("maturity", string(profile.Maturity)),
		attribute.Int("timeframeMonths", investment.TimeframeMonths),
		attribute.Int("serviceCount", services.Count()),
	)
	result := growthlab.Project(profile, investment, services)
	span.SetAttributes(attribute.String("qualification", string(result.Qualification)))
	span.End()

	metrics.ProjectionsTotal.WithLabelValues(string(result.Qualification)).Inc()
	h.obs.RecordProjection(ctx, string(result.Qualification))

	h.logger.Debug("projection calculated", map[string]interface{}{
		"maturity":      profile.Maturity,
		"budget":        investment.MonthlyBudget,
		"timeframe":     investment.TimeframeMonths,
		"services":      services.Count(),
		"fitScore":      result.FitScore,
		"qualification": result.Qualification,
	})

	query := growthlab.ContactQuery(profile, investment, services, result, investment.TimeframeMonths)
	flat := make(map[string]string, len(query))
	for k := range query {
		flat[k] = query.Get(k)
	}

	hrefs := make([]TimelineHref, 0, len(result.Timeline))
	for _, point := range result.Timeline {
		hrefs = append(hrefs, TimelineHref{
			Months: point.Months,
			Href:   growthlab.ContactHref(profile, investment, services, result, point.Months),
		})
	}

	return &Output{
		Profile:       profile,
		Investment:    investment,
		Services:      selected(services),
		Result:        result,
		ContactQuery:  flat,
		ContactHref:   "/contact?" + query.Encode(),
		TimelineHrefs: hrefs,
	}, nil
}

func (h *Handler) resolve(input *Input) (growthlab.StudioProfile, growthlab.InvestmentInput, growthlab.ServiceSelection, error) {
	profile := growthlab.StudioProfile{
		Maturity:         h.config.DefaultMaturity,
		MonthlyEnquiries: h.config.DefaultMonthlyEnquiries,
	}
	investment := growthlab.InvestmentInput{
		MonthlyBudget:   h.config.DefaultMonthlyBudget,
		TimeframeMonths: h.config.DefaultTimeframe,
	}
	services := growthlab.NewServiceSelection(h.config.DefaultServices...)

	if input == nil {
		return profile, investment, services, nil
	}

	if input.Maturity != nil {
		m, err := growthlab.ParseMaturity(*input.Maturity)
		if err != nil {
			return profile, investment, nil, apperrors.NewInvalidProjectionInputError("maturity", err.Error())
		}
		profile.Maturity = m
	}
	if input.MonthlyEnquiries != nil {
		profile.MonthlyEnquiries = *input.MonthlyEnquiries
	}
	if input.MonthlyBudget != nil {
		investment.MonthlyBudget = *input.MonthlyBudget
	}
	if input.TimeframeMonths != nil {
		investment.TimeframeMonths = *input.TimeframeMonths
	}
	if input.Services != nil {
		services = growthlab.ServiceSelection{}
		for _, s := range *input.Services {
			svc, err := growthlab.ParseService(s)
			if err != nil {
				return profile, investment, nil, apperrors.NewInvalidProjectionInputError("services", err.Error())
			}
			services[svc] = true
		}
	}

	if err := checkDomain(profile.MonthlyEnquiries, investment.MonthlyBudget, investment.TimeframeMonths); err != nil {
		return profile, investment, nil, apperrors.NewInvalidProjectionInputError("input", err.Error())
	}
	return profile, investment, services, nil
}

func (h *Handler) options() *OptionsOutput {
	maturities := []growthlab.Maturity{growthlab.MaturityNew, growthlab.MaturityGrowing, growthlab.MaturityEstablished}
	opts := make([]MaturityOption, 0, len(maturities))
	for _, m := range maturities {
		opts = append(opts, MaturityOption{ID: m, Label: m.Label(), Multiplier: m.Multiplier()})
	}

	return &OptionsOutput{
		Maturities: opts,
		Timeframes: growthlab.Timeframes,
		Services:   growthlab.ServiceOptions,
		MonthlyEnquiries: Bounds{
			Min:  growthlab.MinMonthlyEnquiries,
			Max:  growthlab.MaxMonthlyEnquiries,
			Step: 1,
		},
		MonthlyBudget: Bounds{
			Min:  growthlab.MinMonthlyBudget,
			Max:  growthlab.MaxMonthlyBudget,
			Step: growthlab.BudgetStep,
		},
		Defaults: Defaults{
			Maturity:         h.config.DefaultMaturity,
			MonthlyEnquiries: h.config.DefaultMonthlyEnquiries,
			MonthlyBudget:    h.config.DefaultMonthlyBudget,
			TimeframeMonths:  h.config.DefaultTimeframe,
			Services:         h.config.DefaultServices,
		},
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, resp := h.errs.Handle(c.FullPath(), err)
	c.JSON(status, resp)
}

// selected lists the selection in catalogue order.
func selected(services growthlab.ServiceSelection) []growthlab.Service {
	out := make([]growthlab.Service, 0, len(growthlab.ServiceOptions))
	for _, opt := range growthlab.ServiceOptions {
		if services.Has(opt.ID) {
			out = append(out, opt.ID)
		}
	}
	return out
}
