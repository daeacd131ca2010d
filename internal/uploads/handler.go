package uploads

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/extract"
	"ideaspark-backend/internal/shared/server/middleware"
	"ideaspark-backend/internal/shared/server/respond"
	"ideaspark-backend/internal/shared/storage/object"
)

// maxUploadBytes caps idea document uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler accepts idea document uploads and returns the extracted text
// so the client can prefill the idea form.
type Handler struct {
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a file field is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	key, size, mimeType, err := h.Store.Save(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}

	text, err := extract.ExtractText(c.Request.Context(), h.Store, key, mimeType, fileHeader.Filename)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported mime type") {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF, DOCX and plain text files are supported", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from the file", nil)
		return
	}

	respond.OK(c, gin.H{
		"fileKey":   key,
		"fileName":  fileHeader.Filename,
		"sizeBytes": size,
		"mimeType":  mimeType,
		"ideaText":  text,
	})
}
