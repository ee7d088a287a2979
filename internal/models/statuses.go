package models

type OrderStatus string
type PackageType string
type MediaType string

const (
	OrderStatusNew        OrderStatus = "New"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"

	PackageStarter    PackageType = "Starter"
	PackageBusiness   PackageType = "Business"
	PackageEnterprise PackageType = "Enterprise"

	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (p PackageType) Valid() bool {
	switch p {
	case PackageStarter, PackageBusiness, PackageEnterprise:
		return true
	}
	return false
}
