//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	geocodingGateway "dispatch/internal/gateway/http/geocoding"
	notificationGateway "dispatch/internal/gateway/kafka/notification"
	delivery_assign_post "dispatch/internal/handlers/rest/delivery_assign_post"
	delivery_complete_post "dispatch/internal/handlers/rest/delivery_complete_post"
	route_build_post "dispatch/internal/handlers/rest/route_build_post"
	"dispatch/internal/handlers/tasks/queue_compaction"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/status_handle"

	driverRepo "dispatch/internal/repository/driver"
	orderRepo "dispatch/internal/repository/order"
	assignmentService "dispatch/internal/service/assignment"
	routeService "dispatch/internal/service/route"

	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	CompactionInterval time.Duration
)

type Application struct {
	ServiceAssignment ServiceAssignment
	ServiceRoute      ServiceRoute
	BackgroundWorkers *background.Worker
}

type ServiceAssignment interface {
	delivery_assign_post.Service
	delivery_complete_post.Service
}

type ServiceRoute interface {
	route_build_post.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	httpClient *http.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideCompactionInterval,

		provideDriverRepository,
		provideOrderRepository,
		provideNotificationGateway,
		provideGeocodingGateway,

		provideServiceAssignment,
		provideServiceRoute,

		provideQueueCompactionTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceAssignment), new(*assignmentService.Coordinator)),
		wire.Bind(new(ServiceRoute), new(*routeService.Sequencer)),

		wire.Bind(new(assignmentService.DriverRepository), new(*driverRepo.Repository)),
		wire.Bind(new(assignmentService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(assignmentService.Notifier), new(*notificationGateway.Gateway)),
		wire.Bind(new(assignmentService.TxManager), new(*tx.Manager)),

		wire.Bind(new(routeService.Geocoder), new(*geocodingGateway.Gateway)),
		wire.Bind(new(routeService.OrderCompleter), new(*assignmentService.Coordinator)),

		wire.Bind(new(queue_compaction.Service), new(*assignmentService.Coordinator)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	HandlerFactory *status_handle.StatusHandlerFactory
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideDriverRepository,
		provideOrderRepository,
		provideNotificationGateway,

		provideServiceAssignment,
		provideStatusHandlerFactory,

		wire.Bind(new(assignmentService.DriverRepository), new(*driverRepo.Repository)),
		wire.Bind(new(assignmentService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(assignmentService.Notifier), new(*notificationGateway.Gateway)),
		wire.Bind(new(assignmentService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideNotificationGateway(producer sarama.SyncProducer, cfg *config.Config) *notificationGateway.Gateway {
	return notificationGateway.New(producer, cfg.Kafka.NotificationsTopic)
}

func provideGeocodingGateway(httpClient *http.Client, cfg *config.Config) *geocodingGateway.Gateway {
	return geocodingGateway.New(httpClient, cfg.Geocoder.HTTPHost)
}

func provideServiceAssignment(
	log logger.Logger,
	drivers assignmentService.DriverRepository,
	orders assignmentService.OrderRepository,
	notifier assignmentService.Notifier,
	txManager assignmentService.TxManager,
) *assignmentService.Coordinator {
	return assignmentService.New(log, drivers, orders, notifier, txManager)
}

func provideServiceRoute(
	log logger.Logger,
	geocoder routeService.Geocoder,
	completer routeService.OrderCompleter,
) *routeService.Sequencer {
	return routeService.New(log, geocoder, completer)
}

func provideStatusHandlerFactory(coordinator *assignmentService.Coordinator) *status_handle.StatusHandlerFactory {
	return status_handle.NewStatusHandlerFactory(coordinator)
}

func provideCompactionInterval(cfg *config.Config) CompactionInterval {
	return CompactionInterval(cfg.Tasks.QueueCompactionInterval)
}

func provideQueueCompactionTask(
	log logger.Logger,
	compactionService queue_compaction.Service,
	interval CompactionInterval,
) *queue_compaction.QueueCompaction {
	return queue_compaction.NewQueueCompaction(log, compactionService, time.Duration(interval))
}

func provideTaskList(
	queueCompactionTask *queue_compaction.QueueCompaction,
) []background.Task {
	return []background.Task{
		queueCompactionTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
