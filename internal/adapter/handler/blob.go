package handler

import (
	stdErrors "errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/errors"
	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// Blob serves stored audio for backends without their own public endpoint
type Blob struct {
	blobs  repositories.BlobObjectReader
	logger *zap.Logger
}

// NewBlobHandler creates a new blob handler
func NewBlobHandler(blobs repositories.BlobObjectReader, logger *zap.Logger) *Blob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Blob{
		blobs:  blobs,
		logger: logger,
	}
}

// GetBlob handles GET /blobs/*
// @Summary      Download a stored recording
// @Tags         Blobs
// @Produce      octet-stream
// @Param        key  path      string  true  "Object key, e.g. ann/0007.wav"
// @Success      200  {file}    binary
// @Failure      404  {object}  common.ErrorResponse
// @Failure      502  {object}  common.ErrorResponse
// @Router       /blobs/{key} [get]
func (h *Blob) GetBlob(c echo.Context) error {
	key := path.Clean(strings.TrimPrefix(c.Param("*"), "/"))
	if key == "." || strings.HasPrefix(key, "..") {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid blob key"))
	}

	obj, err := h.blobs.GetObject(c.Request().Context(), key)
	if err != nil {
		if stdErrors.Is(err, entities.ErrBlobNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("blob"))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("get", err).WithDetail("key", key))
	}

	// The type recorded at upload wins over the key's extension
	contentType := obj.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(key))
	}
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set("Cache-Control", "max-age=3600")
	return c.Blob(http.StatusOK, contentType, obj.Data)
}
