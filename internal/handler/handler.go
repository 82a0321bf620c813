package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"imagesaver/internal/domain"
	"imagesaver/internal/service"
)

const (
	msgSaved         = "Image saved successfully!"
	msgNoImage       = "No image data provided"
	msgTooLarge      = "Image payload too large"
	msgInternalError = "An internal server error occurred."
)

// RequestIDKey is the gin context key holding the request correlation id.
const RequestIDKey = "request_id"

type Handler struct {
	service service.ImageService
	log     *zap.Logger
}

func NewHandler(service service.ImageService, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) SaveImage(c *gin.Context) {
	if c.ContentType() != binding.MIMEJSON {
		h.log.Info("Rejected save request",
			zap.String(RequestIDKey, c.GetString(RequestIDKey)),
			zap.String("content_type", c.ContentType()))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoImage})
		return
	}

	var req domain.UploadRequest
	if err := bindImageRequest(c, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.log.Warn("Image payload exceeds limit",
				zap.String(RequestIDKey, c.GetString(RequestIDKey)),
				zap.Int64("limit", maxErr.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, domain.ErrorResponse{Error: msgTooLarge})
			return
		}
		h.log.Info("Rejected save request",
			zap.String(RequestIDKey, c.GetString(RequestIDKey)),
			zap.Strings("fields", invalidFields(err)),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoImage})
		return
	}

	image, err := h.service.SaveImage(c.Request.Context(), *req.Image)
	if err != nil {
		h.log.Error("Failed to save image",
			zap.String(RequestIDKey, c.GetString(RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: msgInternalError})
		return
	}

	c.JSON(http.StatusOK, domain.UploadResponse{
		Message:  msgSaved,
		Filename: image.Filename,
		Path:     image.URLPath,
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

var errInvalidJSON = errors.New("request body is not a single JSON value")

// bindImageRequest reads the whole body so that trailing bytes after the
// first JSON value are rejected instead of silently ignored.
func bindImageRequest(c *gin.Context, req *domain.UploadRequest) error {
	raw, err := c.GetRawData()
	if err != nil {
		return err
	}
	if !json.Valid(raw) {
		return errInvalidJSON
	}
	return binding.JSON.BindBody(raw, req)
}

func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		fields = append(fields, verr.Field()+":"+verr.Tag())
	}
	return fields
}
