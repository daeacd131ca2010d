package notifications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the notification service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the user-facing read route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.listActive)
}

// RegisterAdminRoutes attaches the admin console routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.listAll)
	rg.POST("/notifications", h.create)
	rg.PUT("/notifications/:id", h.update)
	rg.DELETE("/notifications/:id", h.remove)
}

type notificationRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Active bool   `json:"active"`
}

func (h *Handler) listActive(c *gin.Context) {
	items, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list notifications", nil)
		return
	}
	respond.OK(c, gin.H{"notifications": items})
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list notifications", nil)
		return
	}
	respond.OK(c, gin.H{"notifications": items})
}

func (h *Handler) create(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), req.Title, req.Body, req.Active)
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrEmptyTitle.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create notification", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, n)
}

func (h *Handler) update(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Body, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrEmptyTitle.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update notification", nil)
		}
		return
	}
	respond.OK(c, n)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete notification", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
