package entities

import "time"

type Order struct {
	ID               string
	CompanyID        int64
	Status           OrderStatusType
	AssignedDriverID *int64
	QueuePosition    *int32
	Address          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderStatusType string

const (
	OrderReady          OrderStatusType = "ready"
	OrderAwaitingDriver OrderStatusType = "awaiting_driver"
	OrderQueued         OrderStatusType = "queued"
	OrderOutForDelivery OrderStatusType = "out_for_delivery"
	OrderDelivered      OrderStatusType = "delivered"
	OrderCancelled      OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

// Assignable сообщает может ли заказ участвовать в назначении водителя.
func (s OrderStatusType) Assignable() bool {
	switch s {
	case OrderReady, OrderAwaitingDriver, OrderQueued:
		return true
	default:
		return false
	}
}

// Terminal сообщает что заказ уже не меняет статус.
func (s OrderStatusType) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type OrderModify struct {
	ID               *string
	CompanyID        *int64
	Status           *OrderStatusType
	AssignedDriverID *int64
	QueuePosition    *int32
	// ClearDriver и ClearQueuePosition явно обнуляют колонку,
	// nil-поле в Modify означает "не трогать".
	ClearDriver        bool
	ClearQueuePosition bool
}

type Offer struct {
	ID       int64
	OrderID  string
	DriverID int64
	Status   OfferStatusType
}

type OfferStatusType string

const (
	OfferPending   OfferStatusType = "pending"
	OfferAccepted  OfferStatusType = "accepted"
	OfferCancelled OfferStatusType = "cancelled"
)
