package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"searxproxy/model"
	"searxproxy/service"
	jsonutil "searxproxy/util/json"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	search   *service.SearchService
	upstream *service.UpstreamService
}

// NewHandler creates a Handler.
func NewHandler(search *service.SearchService, upstream *service.UpstreamService) *Handler {
	return &Handler{search: search, upstream: upstream}
}

// SearchHandler serves GET /api/search.
func (h *Handler) SearchHandler(c *gin.Context) {
	req := model.NewSearchRequest(
		c.Query("q"),
		c.Query("category"),
		c.Query("lang"),
		c.Query("page"),
		c.Query("engines"),
	)

	outcome, err := h.search.Search(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		writeJSON(c, http.StatusBadRequest, model.ErrorResponse{Error: `Query parameter "q" is required`})
		return
	case errors.Is(err, service.ErrAllUpstreamsFailed):
		writeJSON(c, http.StatusServiceUnavailable, model.NewUnavailableResponse(req.Query))
		return
	case err != nil:
		_ = c.Error(err)
		writeJSON(c, http.StatusServiceUnavailable, model.NewUnavailableResponse(req.Query))
		return
	}

	c.Data(http.StatusOK, "application/json", outcome.Body)
}

// EnginesHandler serves GET /api/engines. It always answers 200.
func (h *Handler) EnginesHandler(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.upstream.Engines(c.Request.Context()))
}

// HealthHandler serves GET /api/health. It always answers 200.
func (h *Handler) HealthHandler(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.upstream.Health(c.Request.Context()))
}

// IndexHandler describes the service.
func (h *Handler) IndexHandler(c *gin.Context) {
	writeJSON(c, http.StatusOK, model.IndexResponse{
		Name:        "Golligog SearXNG Backend",
		Version:     Version,
		Description: "Proxy for the SearXNG search API",
		Endpoints: map[string]string{
			"/api/search":  "Search endpoint (GET with ?q=query)",
			"/api/engines": "Get available search engines",
			"/api/health":  "Health check",
		},
	})
}

func writeJSON(c *gin.Context, status int, v interface{}) {
	data, err := jsonutil.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		c.Data(http.StatusInternalServerError, "application/json", []byte(`{"error":"internal error"}`))
		return
	}
	c.Data(status, "application/json", data)
}
