package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/assignment"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, orderID string, companyID int64) (*entities.Order, error) {
	query := `
		SELECT id, company_id, status, assigned_driver_id, queue_position, address, created_at, updated_at
		FROM orders
		WHERE id = $1 AND company_id = $2
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, orderID, companyID).Scan(
		&orderDB.ID,
		&orderDB.CompanyID,
		&orderDB.Status,
		&orderDB.AssignedDriverID,
		&orderDB.QueuePosition,
		&orderDB.Address,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(&orderDB), nil
}

func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	orderModifyModel := FromDomainModify(&orderModify)

	builder := qb.
		Update("orders")

	// опциональные поля
	if orderModifyModel.Status != nil {
		builder = builder.Set("status", orderModifyModel.Status)
	}
	if orderModifyModel.AssignedDriverID != nil {
		builder = builder.Set("assigned_driver_id", orderModifyModel.AssignedDriverID)
	}
	if orderModifyModel.QueuePosition != nil {
		builder = builder.Set("queue_position", orderModifyModel.QueuePosition)
	}
	if orderModify.ClearDriver {
		builder = builder.Set("assigned_driver_id", nil)
	}
	if orderModify.ClearQueuePosition {
		builder = builder.Set("queue_position", nil)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": orderModifyModel.ID}).
		Suffix("RETURNING id, company_id, status, assigned_driver_id, queue_position, address, created_at, updated_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var orderDB OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&orderDB.ID,
		&orderDB.CompanyID,
		&orderDB.Status,
		&orderDB.AssignedDriverID,
		&orderDB.QueuePosition,
		&orderDB.Address,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("queue position conflict: %w", err)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&orderDB), nil
}

// MaxQueuePosition возвращает наибольшую позицию в очереди водителя,
// 0 если очередь пуста. max+1 дает валидный следующий слот и при дырках
// после продвижений.
func (r *Repository) MaxQueuePosition(ctx context.Context, driverID int64) (int32, error) {
	query := `
		SELECT COALESCE(MAX(queue_position), 0)
		FROM orders
		WHERE assigned_driver_id = $1 AND status = 'queued'
	`

	var maxPosition int32
	err := r.querier.QueryRow(ctx, query, driverID).Scan(&maxPosition)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository max queue position error: %w", err)
	}

	return maxPosition, nil
}

func (r *Repository) NextQueued(ctx context.Context, driverID int64) (*entities.Order, error) {
	query := `
		SELECT id, company_id, status, assigned_driver_id, queue_position, address, created_at, updated_at
		FROM orders
		WHERE assigned_driver_id = $1 AND status = 'queued'
		ORDER BY queue_position ASC
		LIMIT 1
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, driverID).Scan(
		&orderDB.ID,
		&orderDB.CompanyID,
		&orderDB.Status,
		&orderDB.AssignedDriverID,
		&orderDB.QueuePosition,
		&orderDB.Address,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrQueueEmpty
		}
		return nil, fmt.Errorf("unexpected order repository next queued error: %w", err)
	}

	return ToDomain(&orderDB), nil
}

func (r *Repository) CancelPendingOffers(ctx context.Context, orderID string) (int64, error) {
	query := `
		UPDATE offers
		SET status = 'cancelled',
		    updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
	`

	result, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository cancel offers error: %w", err)
	}

	return result.RowsAffected(), nil
}

// CompactQueuePositions перенумеровывает очереди всех водителей в плотные
// последовательности с 1. Уже плотные строки не трогаются.
func (r *Repository) CompactQueuePositions(ctx context.Context) (int64, error) {
	query := `
		WITH ranked AS (
			SELECT id,
			       ROW_NUMBER() OVER (
			           PARTITION BY assigned_driver_id
			           ORDER BY queue_position ASC
			       ) AS dense_position
			FROM orders
			WHERE status = 'queued'
		)
		UPDATE orders
		SET queue_position = ranked.dense_position,
		    updated_at = NOW()
		FROM ranked
		WHERE orders.id = ranked.id
		  AND orders.queue_position <> ranked.dense_position
	`

	result, err := r.querier.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository compact queue error: %w", err)
	}

	return result.RowsAffected(), nil
}
