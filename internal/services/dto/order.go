package dto

type CreateOrderRequest struct {
	Name         string `json:"name" validate:"required,notblank,min=2,max=100"`
	BusinessName string `json:"businessName" validate:"max=120"`
	Email        string `json:"email" validate:"omitempty,email,max=120"`
	Phone        string `json:"phone" validate:"max=30"`
	PackageType  string `json:"packageType" validate:"required,is-package-type"`
	Budget       string `json:"budget" validate:"max=60"`
	Requirements string `json:"requirements" validate:"required,notblank,min=5,max=2000"`
}

type CreateOrderResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,is-order-status"`
}

type OrderListQuery struct {
	Status string `form:"status" validate:"omitempty,is-order-status"`
}
