// internal/handlers/content/list-content/handler.go
package listcontent

import (
	"net/http"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/content"

	"github.com/gin-gonic/gin"
)

const (
	EndpointID          = "content.catalog.list"
	CaseStudyEndpointID = "content.casestudy.get"

	cacheControl = "public, max-age=300"
)

// Handler serves the read-only site content.
type Handler struct {
	catalog *content.Catalog
	errs    *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(catalog *content.Catalog, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": EndpointID})
	return &Handler{
		catalog: catalog,
		errs:    apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

// Register mounts one route per catalog section plus the case study lookup.
// Sections are registered explicitly so the static case-studies subtree
// does not compete with a wildcard.
func (h *Handler) Register(r gin.IRoutes) {
	for _, section := range content.Sections {
		r.GET("/api/content/"+section, h.List(section))
	}
	r.GET("/api/content/case-studies/:slug", h.CaseStudy)
}

// List returns the handler for one catalog section.
func (h *Handler) List(section string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := h.catalog.Section(section)
		if !ok {
			h.fail(c, apperrors.NewContentNotFoundError("content section", section))
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.JSON(http.StatusOK, data)
	}
}

// CaseStudy handles GET /api/content/case-studies/:slug.
func (h *Handler) CaseStudy(c *gin.Context) {
	slug := c.Param("slug")
	cs, ok := h.catalog.CaseStudy(slug)
	if !ok {
		h.fail(c, apperrors.NewContentNotFoundError("case study", slug))
		return
	}
	c.Header("Cache-Control", cacheControl)
	c.JSON(http.StatusOK, cs)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, resp := h.errs.Handle(c.FullPath(), err)
	c.JSON(status, resp)
}
