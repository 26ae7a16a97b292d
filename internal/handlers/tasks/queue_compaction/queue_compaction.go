package queue_compaction

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	CompactQueuePositions(ctx context.Context) (int64, error)
}

// QueueCompaction лениво уплотняет позиции в очередях водителей.
// После продвижения заказа в очереди остаются дырки, max+1 при этом
// продолжает выдавать валидные слоты, так что это чистая гигиена.
type QueueCompaction struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewQueueCompaction(log logger.Logger, service Service, interval time.Duration) *QueueCompaction {
	return &QueueCompaction{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (q *QueueCompaction) TTL() time.Duration {
	return q.interval
}

func (q *QueueCompaction) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, q.interval)
	defer cancel()

	rowsAffected, err := q.service.CompactQueuePositions(ctxWithTimeout)

	if rowsAffected > 0 {
		q.log.With(
			logger.NewField("renumbered_orders", rowsAffected),
		).Info("queue compaction")
	}

	return err
}

func (q *QueueCompaction) Info() string {
	return "queue compaction"
}
