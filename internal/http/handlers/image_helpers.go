package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imagebatch/internal/models"
	"imagebatch/internal/services/batch"
	"imagebatch/internal/services/packager"
	"imagebatch/internal/services/processor"
	"imagebatch/pkg/imgutil"
)

// === REQUEST PARSING ===

// collectSources parses the multipart form, enforces the MIME and size
// rules before any processing begins, and reads every accepted file into
// memory. It writes the error response itself and reports ok=false when the
// request must not be processed.
func (h *ImageHandler) collectSources(c *gin.Context) ([]*models.SourceImage, bool) {
	files, err := h.parseMultipartFiles(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	if rejected := h.rejectedFiles(files); len(rejected) > 0 {
		h.respondError(c, http.StatusBadRequest, "rejected files: "+strings.Join(rejected, ", "))
		return nil, false
	}

	sources, err := h.readSources(files)
	if err != nil {
		h.logger.Error("Failed to read uploaded files", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to read uploaded files")
		return nil, false
	}

	return sources, true
}

func (h *ImageHandler) parseMultipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(h.config.Upload.MaxFileSize * 10); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %v", err)
	}

	files := c.Request.MultipartForm.File[filesParamKey]
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	return files, nil
}

// rejectedFiles names every file whose declared type or size is not
// acceptable.
func (h *ImageHandler) rejectedFiles(files []*multipart.FileHeader) []string {
	var rejected []string

	for _, fh := range files {
		ct := fh.Header.Get("Content-Type")
		if !imgutil.IsAllowedType(ct, h.config.Upload.AllowedTypes) {
			rejected = append(rejected, fmt.Sprintf("%s (unsupported type %s)", fh.Filename, imgutil.NormalizeType(ct)))
			continue
		}
		if fh.Size > h.config.Upload.MaxFileSize {
			rejected = append(rejected, fmt.Sprintf("%s (exceeds %d bytes)", fh.Filename, h.config.Upload.MaxFileSize))
		}
	}

	return rejected
}

func (h *ImageHandler) readSources(files []*multipart.FileHeader) ([]*models.SourceImage, error) {
	sources := make([]*models.SourceImage, 0, len(files))

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		sources = append(sources, &models.SourceImage{
			Name:     fh.Filename,
			Size:     fh.Size,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	return sources, nil
}

func (h *ImageHandler) parseResizeSpec(c *gin.Context) (models.TransformSpec, error) {
	scale, err := h.parseScale(c.PostForm("scale"))
	if err != nil {
		return models.TransformSpec{}, err
	}

	target, err := h.parseTargetFormat(c.PostForm("format"))
	if err != nil {
		return models.TransformSpec{}, err
	}

	return models.TransformSpec{
		Mode:         models.ModeResize,
		TargetFormat: target,
		Quality:      h.parseQuality(c.PostForm("quality")),
		Scale:        scale,
	}, nil
}

// parseQuality falls back to the configured default on absent or invalid
// input; quality is never an error at the HTTP boundary.
func (h *ImageHandler) parseQuality(value string) int {
	if value == "" {
		return h.config.Upload.DefaultQuality
	}

	quality, err := strconv.Atoi(value)
	if err != nil || quality < 1 || quality > 100 {
		return h.config.Upload.DefaultQuality
	}

	return quality
}

// parseScale is strict: a resize request without a usable scale is rejected
// so out-of-range values never reach the transformer.
func (h *ImageHandler) parseScale(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("scale is required")
	}

	scale, err := strconv.Atoi(value)
	if err != nil || scale < 1 || scale > 100 {
		return 0, fmt.Errorf("invalid scale: must be an integer between 1 and 100")
	}

	return scale, nil
}

func (h *ImageHandler) parseTargetFormat(value string) (models.TargetFormat, error) {
	switch value {
	case "", "original":
		return models.FormatOriginal, nil
	case "webp":
		return models.FormatWebP, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be original or webp", value)
	}
}

// === PROCESSING ===

// runBatch wires up a fresh prober, transformer and orchestrator for one
// batch run; the prober's dimensions cache lives exactly as long as the run.
func (h *ImageHandler) runBatch(ctx context.Context, sources []*models.SourceImage, spec models.TransformSpec, sink packager.OutputSink) (*models.BatchResult, error) {
	prober := processor.NewProber()
	transformer := processor.NewImageProcessor(prober)

	orchestrator := batch.NewOrchestrator(transformer, sink, h.logger, batch.Options{
		Workers: h.config.Batch.Workers,
		OnProgress: func(percent float64) {
			h.logger.Debug("batch progress", zap.Float64("percent", percent))
		},
	})

	result, err := orchestrator.Run(ctx, sources, spec)
	if err != nil {
		return nil, err
	}

	h.logger.Info("batch completed",
		zap.String("batch_id", result.BatchID),
		zap.Int("total", result.TotalFiles),
		zap.Int("successful", result.SuccessfulCount),
		zap.Int("failed", result.FailedCount),
	)
	return result, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) runAndRespondJSON(c *gin.Context, sources []*models.SourceImage, spec models.TransformSpec) {
	sink := packager.NewCollectSink()

	result, err := h.runBatch(c.Request.Context(), sources, spec, sink)
	if err != nil {
		h.logger.Error("Batch processing failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to process batch")
		return
	}

	attachPayloads(result, sink.Items())

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

func (h *ImageHandler) runAndRespondZip(c *gin.Context, sources []*models.SourceImage, spec models.TransformSpec, kind string) {
	buf := &bytes.Buffer{}
	sink := packager.NewZipSink(buf)

	result, err := h.runBatch(c.Request.Context(), sources, spec, sink)
	if err != nil {
		h.logger.Error("Batch processing failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to process batch")
		return
	}

	filename := packager.ArchiveName(kind, result.StartedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// attachPayloads pairs each successful result with its collected output, in
// order, embedding the encoded bytes as base64.
func attachPayloads(result *models.BatchResult, items []packager.Item) {
	next := 0
	for i := range result.Results {
		if !result.Results[i].Succeeded() {
			continue
		}
		if next >= len(items) {
			return
		}
		result.Results[i].Payload = base64.StdEncoding.EncodeToString(items[next].Data)
		next++
	}
}
