package contact

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/middleware"
	"ideaspark-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the contact service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public contact-form route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

// RegisterAdminRoutes attaches the admin inbox routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/contact", h.list)
	rg.PATCH("/contact/:id/read", h.markRead)
	rg.DELETE("/contact/:id", h.remove)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	if middleware.IsGuest(c) {
		userID = ""
	}
	m, err := h.Svc.Submit(c.Request.Context(), userID, req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		if errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrInvalidEmail) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit message", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": m.ID, "createdAt": m.CreatedAt})
}

func (h *Handler) list(c *gin.Context) {
	limit := 50
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
	messages, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list messages", nil)
		return
	}
	respond.OK(c, gin.H{"messages": messages})
}

type markReadRequest struct {
	Read *bool `json:"read"`
}

func (h *Handler) markRead(c *gin.Context) {
	read := true
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Read != nil {
		read = *req.Read
	}
	if err := h.Svc.MarkRead(c.Request.Context(), strings.TrimSpace(c.Param("id")), read); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "message not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update message", nil)
		return
	}
	respond.OK(c, gin.H{"read": read})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "message not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete message", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
