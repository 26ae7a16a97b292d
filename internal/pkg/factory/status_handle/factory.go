package status_handle

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var ErrUndefinedStatus = errors.New("undefined order status")

type (
	ExecuteFn      func(ctx context.Context, orderID string, companyID int64) error
	HandlerFactory interface {
		GetHandler(status entities.OrderStatusType) (ExecuteFn, error)
	}
)

type Coordinator interface {
	ConfirmPickup(ctx context.Context, orderID string, companyID int64) error
	CompleteDelivery(ctx context.Context, orderID string, companyID int64) (*entities.DeliveryCompletion, error)
	CancelAssignment(ctx context.Context, orderID string, companyID int64) error
}

// StatusHandlerFactory сопоставляет статус заказа из события платформы
// с реакцией координатора назначений.
type StatusHandlerFactory struct {
	coordinator Coordinator
}

func NewStatusHandlerFactory(coordinator Coordinator) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		coordinator: coordinator,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.OrderStatusType) (ExecuteFn, error) {
	switch status {
	case entities.OrderOutForDelivery:
		return f.outForDeliveryHandler, nil
	case entities.OrderDelivered:
		return f.deliveredHandler, nil
	case entities.OrderCancelled:
		return f.cancelledHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUndefinedStatus, status)
	}
}

func (f *StatusHandlerFactory) outForDeliveryHandler(ctx context.Context, orderID string, companyID int64) error {
	err := f.coordinator.ConfirmPickup(ctx, orderID, companyID)
	if err != nil {
		return fmt.Errorf("confirm pickup for order %s: %w", orderID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) deliveredHandler(ctx context.Context, orderID string, companyID int64) error {
	_, err := f.coordinator.CompleteDelivery(ctx, orderID, companyID)
	if err != nil {
		return fmt.Errorf("complete delivery for order %s: %w", orderID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) cancelledHandler(ctx context.Context, orderID string, companyID int64) error {
	err := f.coordinator.CancelAssignment(ctx, orderID, companyID)
	if err != nil {
		return fmt.Errorf("cancel assignment for order %s: %w", orderID, err)
	}
	return nil
}
