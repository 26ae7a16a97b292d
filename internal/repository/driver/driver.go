package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"dispatch/internal/entities"
	"dispatch/internal/service/assignment"
)

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

func (r *Repository) GetByID(ctx context.Context, driverID, companyID int64) (*entities.Driver, error) {
	query := `
		SELECT id, company_id, name, is_active, is_available, status, created_at, updated_at
		FROM drivers
		WHERE id = $1 AND company_id = $2
	`

	var driverDB DriverDB
	err := r.querier.QueryRow(ctx, query, driverID, companyID).Scan(
		&driverDB.ID,
		&driverDB.CompanyID,
		&driverDB.Name,
		&driverDB.IsActive,
		&driverDB.IsAvailable,
		&driverDB.Status,
		&driverDB.CreatedAt,
		&driverDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository get error: %w", err)
	}

	return ToDomain(&driverDB), nil
}

// ClaimIfAvailable единственный concurrency-критичный запрос сервиса:
// атомарный conditional update, а не read-then-write. Две конкурирующие
// попытки claim не могут обе увидеть is_available=true.
func (r *Repository) ClaimIfAvailable(ctx context.Context, driverID int64) (bool, error) {
	query := `
		UPDATE drivers
		SET status = 'pending_acceptance',
		    is_available = FALSE,
		    updated_at = NOW()
		WHERE id = $1 AND is_available = TRUE
	`

	result, err := r.querier.Exec(ctx, query, driverID)
	if err != nil {
		return false, fmt.Errorf("unexpected driver repository claim error: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// MarkClaimed безусловно переводит водителя в pending_acceptance.
// Используется только для идемпотентного переподтверждения уже
// существующей связки заказ-водитель.
func (r *Repository) MarkClaimed(ctx context.Context, driverID int64) error {
	query := `
		UPDATE drivers
		SET status = 'pending_acceptance',
		    is_available = FALSE,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, driverID)
	if err != nil {
		return fmt.Errorf("unexpected driver repository mark claimed error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return assignment.ErrDriverNotFound
	}

	return nil
}

func (r *Repository) Release(ctx context.Context, driverID int64) error {
	query := `
		UPDATE drivers
		SET status = 'available',
		    is_available = TRUE,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, driverID)
	if err != nil {
		return fmt.Errorf("unexpected driver repository release error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return assignment.ErrDriverNotFound
	}

	return nil
}

// MarkInDelivery переводит водителя в активную доставку после того как он
// принял предложенный заказ.
func (r *Repository) MarkInDelivery(ctx context.Context, driverID int64) error {
	query := `
		UPDATE drivers
		SET status = 'in_delivery',
		    is_available = FALSE,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, driverID)
	if err != nil {
		return fmt.Errorf("unexpected driver repository mark in delivery error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return assignment.ErrDriverNotFound
	}

	return nil
}
