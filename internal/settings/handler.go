package settings

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/respond"
)

// Handler exposes the admin settings endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches settings routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
}

type settingsResponse struct {
	AIModel       string `json:"aiModel"`
	HasAPIKey     bool   `json:"hasApiKey"`
	AnalysisLimit int    `json:"dailyAnalysisLimit"`
	PlanLimit     int    `json:"dailyMarketingPlanLimit"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

type updateSettingsRequest struct {
	AIAPIKey      string `json:"aiApiKey"`
	AIModel       string `json:"aiModel"`
	AnalysisLimit *int   `json:"dailyAnalysisLimit"`
	PlanLimit     *int   `json:"dailyMarketingPlanLimit"`
}

func (h *Handler) getSettings(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	respond.OK(c, toResponse(s))
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	current, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}

	next := current
	next.AIAPIKey = strings.TrimSpace(req.AIAPIKey)
	if strings.TrimSpace(req.AIModel) != "" {
		next.AIModel = strings.TrimSpace(req.AIModel)
	}
	if req.AnalysisLimit != nil {
		next.DailyAnalysisLimit = *req.AnalysisLimit
	}
	if req.PlanLimit != nil {
		next.DailyPlanLimit = *req.PlanLimit
	}

	updated, err := h.Svc.Update(c.Request.Context(), next)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, toResponse(updated))
}

func toResponse(s Settings) settingsResponse {
	resp := settingsResponse{
		AIModel:       s.AIModel,
		HasAPIKey:     strings.TrimSpace(s.AIAPIKey) != "",
		AnalysisLimit: s.DailyAnalysisLimit,
		PlanLimit:     s.DailyPlanLimit,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
