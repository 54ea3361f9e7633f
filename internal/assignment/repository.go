// AngelaMos | 2026
// repository.go

package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/medisupply/auth-service/internal/core"
)

type Repository interface {
	Create(ctx context.Context, assignment *Assignment) error
	GetByID(ctx context.Context, id string) (*Assignment, error)
	List(ctx context.Context, limit, offset int) ([]Assignment, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Assignment, error)
	Exists(ctx context.Context, sellerID, clientID string) (bool, error)
	Update(ctx context.Context, assignment *Assignment) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the assignment and flips the client account to enabled
// in a single transaction. The enable write is the approval gate for
// self-registered institutions; running both in one transaction means a
// committed assignment can never leave its client disabled.
func (r *repository) Create(ctx context.Context, a *Assignment) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO assigned_clients (id, seller_id, client_id)
			VALUES ($1, $2, $3)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, a, query, a.ID, a.SellerID, a.ClientID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("create assignment: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create assignment: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE users SET enabled = TRUE, updated_at = NOW() WHERE id = $1",
			a.ClientID)
		if err != nil {
			return fmt.Errorf("enable assigned client: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("enable assigned client: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("enable assigned client: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Assignment, error) {
	query := `
		SELECT id, seller_id, client_id, created_at, updated_at
		FROM assigned_clients
		WHERE id = $1`

	var a Assignment
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &a, nil
}

func (r *repository) List(
	ctx context.Context,
	limit, offset int,
) ([]Assignment, error) {
	query := `
		SELECT id, seller_id, client_id, created_at, updated_at
		FROM assigned_clients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	return assignments, nil
}

func (r *repository) ListBySeller(
	ctx context.Context,
	sellerID string,
) ([]Assignment, error) {
	query := `
		SELECT id, seller_id, client_id, created_at, updated_at
		FROM assigned_clients
		WHERE seller_id = $1
		ORDER BY created_at DESC`

	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, sellerID); err != nil {
		return nil, fmt.Errorf("list assignments by seller: %w", err)
	}

	return assignments, nil
}

func (r *repository) Exists(
	ctx context.Context,
	sellerID, clientID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM assigned_clients
			WHERE seller_id = $1 AND client_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, sellerID, clientID); err != nil {
		return false, fmt.Errorf("check assignment exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, a *Assignment) error {
	query := `
		UPDATE assigned_clients
		SET seller_id = $2, client_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query, a.ID, a.SellerID, a.ClientID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM assigned_clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete assignment: %w", core.ErrNotFound)
	}

	return nil
}
