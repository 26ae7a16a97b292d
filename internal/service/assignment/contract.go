//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=assignment_test
package assignment

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type coordinatorLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type DriverRepository interface {
	GetByID(ctx context.Context, driverID, companyID int64) (*entities.Driver, error)

	// ClaimIfAvailable атомарный conditional update:
	// водитель переводится в pending_acceptance/is_available=false только если
	// в строке все еще is_available=true. Возвращает false при проигрыше гонки.
	ClaimIfAvailable(ctx context.Context, driverID int64) (bool, error)

	MarkClaimed(ctx context.Context, driverID int64) error
	MarkInDelivery(ctx context.Context, driverID int64) error
	Release(ctx context.Context, driverID int64) error
}

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string, companyID int64) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)

	MaxQueuePosition(ctx context.Context, driverID int64) (int32, error)
	NextQueued(ctx context.Context, driverID int64) (*entities.Order, error)
	CancelPendingOffers(ctx context.Context, orderID string) (int64, error)
	CompactQueuePositions(ctx context.Context) (int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.DriverNotification) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
