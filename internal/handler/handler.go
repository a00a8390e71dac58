package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/domain"
	"github.com/zyfayes/polaroid/internal/export"
	"github.com/zyfayes/polaroid/internal/service"
)

type Handler struct {
	service service.CameraService
	actions *export.Actions
	log     *zap.Logger
}

func NewHandler(service service.CameraService, actions *export.Actions, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		actions: actions,
		log:     log,
	}
}

// photoView is the list representation: the payload is omitted to keep
// responses light.
type photoView struct {
	ID         string `json:"id"`
	CapturedAt int64  `json:"capturedAt"`
	Developing bool   `json:"developing"`
}

func (h *Handler) Capture(c *gin.Context) {
	photo, err := h.service.Capture(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCaptureUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Capture unavailable"})
			return
		}
		h.log.Error("Failed to capture photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"photo": photoView{
			ID:         photo.ID,
			CapturedAt: photo.CapturedAt,
			Developing: h.service.Developing(photo.ID),
		},
	})
}

func (h *Handler) ListPhotos(c *gin.Context) {
	photos := h.service.Photos()

	views := make([]photoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, photoView{
			ID:         p.ID,
			CapturedAt: p.CapturedAt,
			Developing: h.service.Developing(p.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"photos": views})
}

func (h *Handler) GetPhoto(c *gin.Context) {
	photo, err := h.service.Photo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo": photo})
}

func (h *Handler) DeletePhoto(c *gin.Context) {
	// Deleting an unknown id is a no-op, same as the store contract.
	h.service.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

func (h *Handler) CopyFrame(c *gin.Context) {
	photo, err := h.service.Photo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	if err := h.actions.CopyToClipboard(c.Request.Context(), photo); err != nil {
		switch {
		case errors.Is(err, domain.ErrClipboardUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clipboard unavailable"})
		case errors.Is(err, domain.ErrDecode):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Photo payload unreadable"})
		default:
			h.log.Error("Failed to copy frame", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to copy frame"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Frame copied to clipboard"})
}

func (h *Handler) DownloadFrame(c *gin.Context) {
	photo, err := h.service.Photo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	data, err := h.actions.Render(c.Request.Context(), photo)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Photo payload unreadable"})
			return
		}
		h.log.Error("Failed to render frame", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render frame"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(photo.ID)+`"`)
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
