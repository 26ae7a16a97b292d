//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_build_post_test
package route_build_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/service/route"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	BuildRoute(ctx context.Context, driverPosition entities.Coordinates, orders []route.OrderAddress) (*entities.Route, error)
}
