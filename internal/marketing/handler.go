package marketing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/analysis"
	"ideaspark-backend/internal/shared/server/middleware"
	"ideaspark-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the marketing service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches marketing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/marketing-plans", h.generate)
	rg.GET("/marketing-plans/:analysisId", h.get)
}

type generateRequest struct {
	AnalysisID string `json:"analysisId"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysisId is required", nil)
		return
	}

	record, err := h.Svc.Generate(c.Request.Context(), userID, req.AnalysisID)
	if err != nil {
		var quotaErr *analysis.QuotaError
		switch {
		case errors.Is(err, analysis.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, analysis.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "The AI backend is not configured yet. An administrator must set the API key and model.", nil)
		case errors.As(err, &quotaErr):
			respond.Error(c, http.StatusTooManyRequests, "quota_exceeded",
				"Daily marketing plan limit reached.", gin.H{
					"count":       quotaErr.Count,
					"limit":       quotaErr.Limit,
					"kind":        quotaErr.Kind,
					"contactPath": "/contact",
				})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate marketing plan", nil)
		}
		return
	}
	respond.OK(c, record)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	record, err := h.Svc.Get(c.Request.Context(), userID, c.Param("analysisId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "marketing plan not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch marketing plan", nil)
		return
	}
	respond.OK(c, record)
}
