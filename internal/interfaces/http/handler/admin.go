package handler

import (
	"bufio"
	"errors"
	"net/http"
	"time"

	"github.com/ergolife/storefront/internal/application/admin"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"github.com/ergolife/storefront/internal/infrastructure/storage"
	"github.com/ergolife/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultMaxUploadSize caps a single image upload
const DefaultMaxUploadSize int64 = 5 << 20

// UploadResponse is returned for a stored image
type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// AdminHandler serves the back-office dashboard and image uploads
type AdminHandler struct {
	BaseHandler
	dashboard     *admin.DashboardService
	images        storage.ImageStore
	maxUploadSize int64
	now           func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboard *admin.DashboardService, images storage.ImageStore, maxUploadSize int64) *AdminHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &AdminHandler{
		dashboard:     dashboard,
		images:        images,
		maxUploadSize: maxUploadSize,
		now:           time.Now,
	}
}

// Dashboard godoc
// @Summary      Back-office summary
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=admin.DashboardStats}
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Upload godoc
// @Summary      Upload a product or blog image
// @Description  Stores a jpeg, png, webp or gif image and returns its public URL. The type is sniffed from the content.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData file   true  "Image"
// @Param        folder formData string false "products | blogs"
// @Success      201 {object} dto.Response{data=UploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/admin/uploads [post]
func (h *AdminHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Image exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "Multipart field 'file' is required")
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Image exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 512)
	head, _ := reader.Peek(512)
	contentType := http.DetectContentType(head)

	key, err := storage.ObjectKey(c.DefaultPostForm("folder", "products"), contentType, h.now())
	if errors.Is(err, storage.ErrUnsupportedType) {
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeUnsupportedMedia, "Only jpeg, png, webp and gif images are accepted")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	url, err := h.images.Put(c.Request.Context(), key, reader, fileHeader.Size, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(c.Request.Context()).Info("Image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", fileHeader.Size),
	)
	h.Created(c, UploadResponse{URL: url, Key: key, ContentType: contentType, Size: fileHeader.Size})
}
