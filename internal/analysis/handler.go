package analysis

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/middleware"
	"ideaspark-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.submit)
	rg.POST("/analyses/answers", h.submitAnswer)
	rg.POST("/analyses/exit", h.exitSession)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/analyses/:id/export", h.exportAnalysis)
}

type submitRequest struct {
	IdeaText string `json:"ideaText"`
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

type answerRequest struct {
	Session Session `json:"session"`
	Answer  string  `json:"answer"`
}

type exitRequest struct {
	Session Session `json:"session"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	mode := ParseMode(req.Mode)
	c.Set("analysisMode", string(mode))

	sess, err := h.Svc.Submit(c.Request.Context(), Request{
		IdeaText: req.IdeaText,
		Mode:     mode,
		UserID:   userID,
		Language: req.Language,
	})
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}
	c.Set("analysisId", sess.RecordID)

	resp := gin.H{
		"session": sess,
		"result":  sess.Result,
	}
	if sess.Active() {
		// Deferred activation: the client shows the result first and
		// asks the opening question after the delay.
		resp["interactive"] = gin.H{
			"active":            true,
			"questions":         sess.Questions,
			"nextQuestion":      sess.Questions[0],
			"activationDelayMs": ActivationDelay.Milliseconds(),
		}
	}
	respond.OK(c, resp)
}

func (h *Handler) submitAnswer(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	next, _, revisionErr := h.Svc.SubmitAnswer(c.Request.Context(), userID, req.Session, req.Answer)
	if revisionErr != nil {
		if errors.Is(revisionErr, ErrEmptyAnswer) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrEmptyAnswer.Error(), nil)
			return
		}
		if !next.Active() && next.Phase != PhaseCompleted {
			// Session was not advanced at all (e.g. no active session).
			respond.Error(c, http.StatusBadRequest, "validation_error", revisionErr.Error(), nil)
			return
		}
	}

	resp := gin.H{
		"session":   next,
		"result":    next.Result,
		"completed": next.Phase == PhaseCompleted,
	}
	if question, ok := next.CurrentQuestion(); ok {
		resp["nextQuestion"] = question
	}
	if revisionErr != nil {
		// Skip-on-error: report the failed round without aborting.
		resp["revisionError"] = gin.H{
			"code":    ErrorCodeAnalysis,
			"message": "This answer could not be applied; continuing with the next question.",
		}
	}
	respond.OK(c, resp)
}

func (h *Handler) exitSession(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req exitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	next := h.Svc.Exit(c.Request.Context(), userID, req.Session)
	respond.OK(c, gin.H{
		"session": next,
		"result":  next.Result,
	})
}

func (h *Handler) listAnalyses(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	records, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, r := range records {
		items = append(items, gin.H{
			"id":           r.ID,
			"ideaText":     r.IdeaText,
			"mode":         r.Mode,
			"language":     r.Language,
			"overallScore": r.Result.OverallScore,
			"createdAt":    r.CreatedAt,
		})
	}
	respond.OK(c, gin.H{"analyses": items})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	record, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		return
	}
	respond.OK(c, record)
}

// exportAnalysis returns the full record shaped for client-side PDF
// rendering of the history entry.
func (h *Handler) exportAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	record, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export analysis", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="analysis-`+record.ID+`.json"`)
	respond.OK(c, gin.H{
		"exportedAt": record.CreatedAt,
		"language":   record.Language,
		"ideaText":   record.IdeaText,
		"mode":       record.Mode,
		"result":     record.Result,
	})
}

func (h *Handler) respondSubmitError(c *gin.Context, err error) {
	var quotaErr *QuotaError
	switch {
	case errors.Is(err, ErrEmptyIdea):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrEmptyIdea.Error(), nil)
	case errors.Is(err, ErrInProgress):
		respond.Error(c, http.StatusConflict, "in_progress", "An analysis is already running; please wait for it to finish.", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "The AI backend is not configured yet. An administrator must set the API key and model.", nil)
	case errors.As(err, &quotaErr):
		respond.Error(c, http.StatusTooManyRequests, "quota_exceeded",
			"Daily analysis limit reached.", gin.H{
				"count":       quotaErr.Count,
				"limit":       quotaErr.Limit,
				"kind":        quotaErr.Kind,
				"contactPath": "/contact",
			})
	default:
		var analysisErr *AnalysisError
		if errors.As(err, &analysisErr) {
			respond.Error(c, http.StatusBadGateway, "analysis_failed", "The analysis could not be completed. Please try again.", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
	}
}
