package handlers

import (
	"errors"
	"net/http"
	"strings"

	"studio_backend/internal/logger"
	"studio_backend/internal/media"
	"studio_backend/internal/middleware"
	"studio_backend/internal/models"
	"studio_backend/internal/services"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	// MediaFormField is the repeatable multipart field carrying uploads.
	MediaFormField = "files"

	multipartMemory = 32 << 20
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

// RegisterAdminRoutes expects r to be behind AdminAuthMiddleware.
func (h *MediaHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	group := r.Group("/portfolio/:id/media")
	{
		group.POST("", h.Attach)
		group.DELETE("", h.Detach)
	}
}

// Attach godoc
// @Summary      Attach media to a portfolio item
// @Description  Uploads every file or none. Files are appended in submission order.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Portfolio ID"
// @Param        files  formData  file    true  "Image or video, repeatable"
// @Success      200  {object}  dto.ItemResponse[models.Portfolio]
// @Failure      400  {object}  apperrors.ErrorResponse
// @Failure      404  {object}  apperrors.ErrorResponse
// @Failure      413  {object}  apperrors.ErrorResponse
// @Failure      415  {object}  apperrors.ErrorResponse
// @Failure      502  {object}  apperrors.ErrorResponse
// @Router       /api/admin/portfolio/{id}/media [post]
func (h *MediaHandler) Attach(c *gin.Context) {
	ctx := c.Request.Context()

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge())
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			logger.CtxWithError(ctx, "Failed to parse multipart form", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart body"))
			return
		}
	}
	if form := c.Request.MultipartForm; form != nil {
		defer func() {
			if err := form.RemoveAll(); err != nil {
				logger.CtxWarn(ctx, "Failed to remove multipart temp files", "error", err)
			}
		}()
	}

	var candidates []media.Candidate
	if form := c.Request.MultipartForm; form != nil {
		for _, fh := range form.File[MediaFormField] {
			candidates = append(candidates, media.CandidateFromFileHeader(fh))
		}
	}

	adminID := c.GetString(middleware.AdminIDKey)
	logger.CtxInfo(ctx, "Media upload received", "portfolio_id", c.Param("id"), "files", len(candidates), "admin_id", adminID)

	item, err := h.mediaService.Attach(ctx, h.GetDB(c), c.Param("id"), candidates)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(item))
}

// Detach godoc
// @Summary      Detach media from a portfolio item
// @Description  Removes entries by publicId, or by url for media without one. Unknown references are a no-op.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "Portfolio ID"
// @Param        body  body  dto.DetachMediaRequest  true  "Exactly one of publicId or url"
// @Success      200  {object}  dto.ItemResponse[models.Portfolio]
// @Failure      400  {object}  apperrors.ErrorResponse
// @Failure      404  {object}  apperrors.ErrorResponse
// @Router       /api/admin/portfolio/{id}/media [delete]
func (h *MediaHandler) Detach(c *gin.Context) {
	var req dto.DetachMediaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	publicID := strings.TrimSpace(req.PublicID)
	url := strings.TrimSpace(req.URL)

	if (publicID == "") == (url == "") {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{
			"publicId": "exactly one of publicId or url is required",
		}))
		return
	}

	ctx := c.Request.Context()
	var (
		item *models.Portfolio
		err  error
	)
	if publicID != "" {
		item, err = h.mediaService.Detach(ctx, h.GetDB(c), c.Param("id"), publicID)
	} else {
		item, err = h.mediaService.DetachByURL(ctx, h.GetDB(c), c.Param("id"), url)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(item))
}
