package handlers

import (
	"errors"
	"io"
	"net/http"

	"studio_backend/internal/services"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/portfolio")
	{
		public.GET("", h.ListPublished)
		public.GET("/:id", h.GetPublished)
	}
}

// RegisterAdminRoutes expects r to be behind AdminAuthMiddleware.
func (h *PortfolioHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/portfolio")
	{
		admin.GET("", h.ListAll)
		admin.POST("", h.Create)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.PATCH("/:id/publish", h.SetPublished)
	}
}

// --- Public handlers ---

// ListPublished godoc
// @Summary      List published portfolio items
// @Tags         portfolio
// @Produce      json
// @Param        page      query  int     false  "Page, from 1"
// @Param        limit     query  int     false  "Page size, 1..200"
// @Param        category  query  string  false  "Category filter"
// @Success      200  {object}  dto.PortfolioListResponse
// @Router       /api/portfolio [get]
func (h *PortfolioHandler) ListPublished(c *gin.Context) {
	h.list(c, true)
}

// GetPublished godoc
// @Summary      Get a published portfolio item
// @Tags         portfolio
// @Produce      json
// @Param        id  path  string  true  "Portfolio ID"
// @Success      200  {object}  dto.ItemResponse[models.Portfolio]
// @Failure      404  {object}  apperrors.ErrorResponse
// @Router       /api/portfolio/{id} [get]
func (h *PortfolioHandler) GetPublished(c *gin.Context) {
	h.get(c, false)
}

// --- Admin handlers ---

func (h *PortfolioHandler) ListAll(c *gin.Context) {
	h.list(c, false)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	h.get(c, true)
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.portfolioService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Item(item))
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var req dto.UpdatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.portfolioService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(item))
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.portfolioService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// SetPublished accepts an empty body, which toggles the flag.
func (h *PortfolioHandler) SetPublished(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	item, err := h.portfolioService.SetPublished(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Published)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(item))
}

func (h *PortfolioHandler) list(c *gin.Context, publicOnly bool) {
	var query dto.PortfolioListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.portfolioService.List(c.Request.Context(), h.GetDB(c), query, publicOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PortfolioHandler) get(c *gin.Context, includeDrafts bool) {
	item, err := h.portfolioService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"), includeDrafts)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(item))
}
