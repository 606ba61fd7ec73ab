package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/wallet-go/apperror"
)

// PostgresStore is the pgx-backed implementation of Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetByUserID returns the account owned by the given user.
func (s *PostgresStore) GetByUserID(ctx context.Context, userID int64) (*Account, error) {
	query := `SELECT id, user_id, balance, created_at
	          FROM accounts
	          WHERE user_id = $1
	          ORDER BY id
	          LIMIT 1`

	var account Account
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Balance,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("account for user %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get account", err)
	}
	return &account, nil
}
