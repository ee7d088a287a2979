package handlers

import (
	"net/http"

	"studio_backend/internal/services"
	"studio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/reviews")
	{
		public.GET("", h.ListApproved)
		public.POST("", h.Submit)
	}
}

func (h *ReviewHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/reviews")
	{
		admin.GET("", h.ListAll)
		admin.PATCH("/:id/approve", h.Approve)
		admin.PATCH("/:id/hide", h.Hide)
		admin.DELETE("/:id", h.Delete)
	}
}

// --- Public handlers ---

func (h *ReviewHandler) ListApproved(c *gin.Context) {
	reviews, err := h.reviewService.ListApproved(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Items(reviews))
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{OK: true, ID: review.ID})
}

// --- Admin handlers ---

func (h *ReviewHandler) ListAll(c *gin.Context) {
	reviews, err := h.reviewService.ListAll(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Items(reviews))
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	h.setApproved(c, true)
}

func (h *ReviewHandler) Hide(c *gin.Context) {
	h.setApproved(c, false)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ReviewHandler) setApproved(c *gin.Context, approved bool) {
	review, err := h.reviewService.SetApproved(c.Request.Context(), h.GetDB(c), c.Param("id"), approved)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(review))
}
