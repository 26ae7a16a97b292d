//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_test
package route

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type sequencerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Geocoder interface {
	Resolve(ctx context.Context, address string) (entities.Coordinates, error)
}

type OrderCompleter interface {
	CompleteDelivery(ctx context.Context, orderID string, companyID int64) (*entities.DeliveryCompletion, error)
}
