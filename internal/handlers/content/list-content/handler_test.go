// internal/handlers/content/list-content/handler_test.go
package listcontent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/content"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(content.MustDefault(), logger.NewTestLogger(t)).Register(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_List(t *testing.T) {
	r := newTestRouter(t)

	t.Run("services", func(t *testing.T) {
		w := get(r, "/api/content/services")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cacheControl, w.Header().Get("Cache-Control"))

		var services []content.Service
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
		require.Len(t, services, 4)
		assert.Equal(t, "brand-identity", services[0].Slug)
	})

	t.Run("packages", func(t *testing.T) {
		w := get(r, "/api/content/packages")
		require.Equal(t, http.StatusOK, w.Code)

		var packages []content.Package
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packages))
		require.Len(t, packages, 3)
		assert.Equal(t, 3500, packages[0].FromAmount)
	})

	t.Run("case studies", func(t *testing.T) {
		w := get(r, "/api/content/case-studies")
		require.Equal(t, http.StatusOK, w.Code)

		var studies []content.CaseStudy
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &studies))
		assert.Len(t, studies, 6)
	})

	t.Run("faqs", func(t *testing.T) {
		w := get(r, "/api/content/faqs")
		require.Equal(t, http.StatusOK, w.Code)

		var faqs []content.FAQ
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &faqs))
		assert.Len(t, faqs, 2)
	})

	t.Run("form options", func(t *testing.T) {
		w := get(r, "/api/content/form-options")
		require.Equal(t, http.StatusOK, w.Code)

		var opts content.FormOptions
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
		assert.NotEmpty(t, opts.ProjectTypes)
		assert.NotEmpty(t, opts.Budgets)
		assert.NotEmpty(t, opts.Timelines)
	})

	t.Run("unknown section", func(t *testing.T) {
		w := get(r, "/api/content/testimonials")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_CaseStudy(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		slug       string
		wantStatus int
		wantTitle  string
	}{
		{"long form entry", "mayfair-townhouse", http.StatusOK, "Mayfair Townhouse"},
		{"short form entry", "holloway-house", http.StatusOK, "Holloway House"},
		{"unknown slug", "does-not-exist", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/api/content/case-studies/"+tt.slug)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				var resp apperrors.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.False(t, resp.OK)
				assert.Equal(t, apperrors.ErrCodeContentNotFound, resp.Code)
				assert.Equal(t, "No case study found.", resp.Error)
				return
			}

			var cs content.CaseStudy
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cs))
			assert.Equal(t, tt.slug, cs.Slug)
			assert.Equal(t, tt.wantTitle, cs.Title)
		})
	}
}
