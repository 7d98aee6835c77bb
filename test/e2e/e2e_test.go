// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"studio-growth/internal/common/config"
	"studio-growth/internal/common/database"
	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/common/resend"
	"studio-growth/internal/contact"
	"studio-growth/internal/content"
	enquiryrelay "studio-growth/internal/handlers/communication/enquiry-relay"
	listcontent "studio-growth/internal/handlers/content/list-content"
	calculateprojection "studio-growth/internal/handlers/growth-lab/calculate-projection"
	"studio-growth/internal/server"
	"studio-growth/pkg/registry"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResend records the emails posted to the provider API.
type fakeResend struct {
	mu     sync.Mutex
	emails []resend.Email
}

func (f *fakeResend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var email resend.Email
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.emails = append(f.emails, email)
	f.mu.Unlock()
	_, _ = w.Write([]byte(`{"id":"e2e-message"}`))
}

func (f *fakeResend) sent() []resend.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]resend.Email(nil), f.emails...)
}

type stack struct {
	api      *httptest.Server
	provider *fakeResend
	redis    *miniredis.Miniredis
}

// newStack wires the service the way serve does, with redis and the email
// provider replaced by in-process fakes.
func newStack(t *testing.T) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := &fakeResend{}
	providerSrv := httptest.NewServer(provider)
	t.Cleanup(providerSrv.Close)

	mr := miniredis.RunT(t)

	cfg := &config.Config{}
	cfg.App.Name = "studio-growth"
	cfg.Server.ShutdownTimeout = 1000
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	cfg.Enquiry = config.EnquiryConfig{
		Provider:   config.ProviderResend,
		From:       config.DefaultEnquiryFrom,
		Recipients: []string{config.DefaultEnquiryRecipient},
		Subject:    config.DefaultEnquirySubject,
		Cooldown:   8000,
		Timeout:    5000,
	}
	cfg.Integrations.Resend.APIKey = "re_e2e"
	cfg.Integrations.Resend.BaseURL = providerSrv.URL
	cfg.Database.Redis = config.RedisConfig{Enabled: true, Address: mr.Addr()}

	log := logger.NewTestLogger(t)
	reg := registry.MustDefault()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	mailer, err := enquiryrelay.NewMailer(t.Context(), cfg)
	require.NoError(t, err)

	projection, err := calculateprojection.NewHandler(calculateprojection.DefaultConfig(), reg, nil, log)
	require.NoError(t, err)
	relay, err := enquiryrelay.NewHandler(enquiryrelay.LoadConfig(cfg.Enquiry), reg, mailer, nil,
		enquiryrelay.NewRedisCooldown(rdb.Client), nil, log)
	require.NoError(t, err)

	router, err := server.NewRouter(cfg, server.Options{
		Handlers: []server.Registrar{projection, relay, listcontent.NewHandler(content.MustDefault(), log)},
		Redis:    rdb,
	}, log)
	require.NoError(t, err)

	api := httptest.NewServer(router)
	t.Cleanup(api.Close)
	return &stack{api: api, provider: provider, redis: mr}
}

func (s *stack) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.api.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.api.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// TestGrowthLabToEnquiry follows a visitor from the lab through the contact
// hand-off to a relayed enquiry.
func TestGrowthLabToEnquiry(t *testing.T) {
	s := newStack(t)

	// 1. Probes
	resp, _ := s.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 2. Lab controls
	resp, body := s.do(t, http.MethodGet, "/api/growth-lab/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var options calculateprojection.OptionsOutput
	require.NoError(t, json.Unmarshal(body, &options))
	assert.Equal(t, 9500, options.Defaults.MonthlyBudget)

	// 3. Projection
	resp, body = s.do(t, http.MethodPost, "/api/growth-lab/projection", map[string]interface{}{
		"maturity":         "established",
		"monthlyEnquiries": 10,
		"monthlyBudget":    12000,
		"timeframeMonths":  12,
		"services":         []string{"social", "website", "branding"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var projection calculateprojection.Output
	require.NoError(t, json.Unmarshal(body, &projection))
	require.Equal(t, "Ideal Fit", projection.Result.QualificationLabel)

	// 4. Contact page reads the hand-off link
	href, err := url.Parse(projection.ContactHref)
	require.NoError(t, err)
	lab := contact.ParseLabContext(href.Query())
	require.NotNil(t, lab)
	assert.Equal(t, "Social Media, Website, Branding", lab.Strategy)

	enquiry := map[string]interface{}{
		"name":            "Ada Lovelace",
		"email":           "ada@example.com",
		"studio":          "Analytical Interiors",
		"projectType":     "Full growth system",
		"estimatedBudget": "£10k+",
		"timeline":        "Next quarter",
		"message":         contact.MessagePrefill(lab),
		"consent":         true,
		"companyWebsite":  "",
		"growthLab":       lab,
	}

	// 5. Relay
	resp, body = s.do(t, http.MethodPost, "/api/enquiry", enquiry)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out enquiryrelay.Output
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.OK)
	assert.NotEmpty(t, out.Reference)

	sent := s.provider.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].ReplyTo)
	assert.Equal(t, config.DefaultEnquirySubject, sent[0].Subject)
	assert.Equal(t, out.Reference, sent[0].Headers["X-Entity-Ref-ID"])
	assert.Contains(t, sent[0].Text, "Budget: GBP 12,000")
	assert.Contains(t, sent[0].Text, "Fit: Ideal Fit")
	assert.Contains(t, sent[0].Text, "Timeframe: 12 months")

	// 6. Immediate resubmission is held by the shared cooldown
	resp, body = s.do(t, http.MethodPost, "/api/enquiry", enquiry)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	var rejected apperrors.Response
	require.NoError(t, json.Unmarshal(body, &rejected))
	assert.Equal(t, apperrors.MsgThrottled, rejected.Error)
	assert.Len(t, s.provider.sent(), 1)

	// 7. Metrics reflect the traffic
	resp, body = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `enquiries_total{outcome="sent"}`)
	assert.Contains(t, string(body), `growth_lab_projections_total{qualification="ideal_fit"}`)
}

func TestContentCatalog(t *testing.T) {
	s := newStack(t)

	resp, body := s.do(t, http.MethodGet, "/api/content/case-studies/riverside-penthouse", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cs content.CaseStudy
	require.NoError(t, json.Unmarshal(body, &cs))
	assert.Equal(t, "Riverside Penthouse", cs.Title)

	resp, _ = s.do(t, http.MethodGet, "/api/content/case-studies/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/content/form-options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "projectTypes"))
}

func TestReadinessFollowsRedis(t *testing.T) {
	s := newStack(t)

	s.redis.SetError("LOADING redis is loading the dataset in memory")
	resp, _ := s.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s.redis.SetError("")
	resp, _ = s.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
