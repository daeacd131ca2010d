package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public read route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.listPublic)
}

// RegisterAdminRoutes attaches the admin console routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.listAll)
	rg.POST("/catalog", h.create)
	rg.PUT("/catalog/:id", h.update)
	rg.DELETE("/catalog/:id", h.remove)
}

func (h *Handler) listPublic(c *gin.Context) {
	items, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list catalog", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list catalog", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	item, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, item)
}

func (h *Handler) update(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	item, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, item)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidKind):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "catalog item not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "catalog operation failed", nil)
	}
}
