package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imagebatch/internal/config"
	"imagebatch/internal/models"
)

const filesParamKey = "files"

type ImageHandler struct {
	logger *zap.Logger
	config *config.Config
}

func NewImageHandler(logger *zap.Logger, config *config.Config) *ImageHandler {
	return &ImageHandler{
		logger: logger,
		config: config,
	}
}

// === MAIN API ENDPOINTS ===

// Convert re-encodes every uploaded file to WebP and returns a JSON summary
// with one base64 payload per successful file.
func (h *ImageHandler) Convert(c *gin.Context) {
	sources, ok := h.collectSources(c)
	if !ok {
		return
	}

	spec := models.TransformSpec{
		Mode:         models.ModeConvert,
		TargetFormat: models.FormatWebP,
		Quality:      h.parseQuality(c.PostForm("quality")),
	}

	h.runAndRespondJSON(c, sources, spec)
}

// ConvertZip behaves like Convert but delivers one ZIP archive. Files that
// failed to convert are simply absent from the archive; this endpoint
// returns no per-item summary alongside the binary body.
func (h *ImageHandler) ConvertZip(c *gin.Context) {
	sources, ok := h.collectSources(c)
	if !ok {
		return
	}

	spec := models.TransformSpec{
		Mode:         models.ModeConvert,
		TargetFormat: models.FormatWebP,
		Quality:      h.parseQuality(c.PostForm("quality")),
	}

	h.runAndRespondZip(c, sources, spec, "converted")
}

// Resize scales every uploaded file by a percentage of its original
// dimensions, optionally converting to WebP.
func (h *ImageHandler) Resize(c *gin.Context) {
	sources, ok := h.collectSources(c)
	if !ok {
		return
	}

	spec, err := h.parseResizeSpec(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.runAndRespondJSON(c, sources, spec)
}

// ResizeZip is the archive variant of Resize.
func (h *ImageHandler) ResizeZip(c *gin.Context) {
	sources, ok := h.collectSources(c)
	if !ok {
		return
	}

	spec, err := h.parseResizeSpec(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.runAndRespondZip(c, sources, spec, "resized")
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: models.HealthCheck{
			Status:    "healthy",
			Timestamp: time.Now(),
			Services:  map[string]string{"converter": "healthy"},
		},
	})
}
