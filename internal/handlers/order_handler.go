package handlers

import (
	"net/http"

	"studio_backend/internal/logger"
	"studio_backend/internal/services"
	"studio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/orders", h.Create)
}

func (h *OrderHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create godoc
// @Summary      Submit an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Order"
// @Success      201  {object}  dto.CreateOrderResponse
// @Failure      400  {object}  apperrors.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateOrderResponse{OK: true, OrderID: order.ID})
}

func (h *OrderHandler) List(c *gin.Context) {
	var query dto.OrderListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), h.GetDB(c), query.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Items(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Item(order))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	adminID, ok := h.GetAdminID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "Order status changed by admin", "order_id", order.ID, "admin_id", adminID)
	c.JSON(http.StatusOK, dto.Item(order))
}
