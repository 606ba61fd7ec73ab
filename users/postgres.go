package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/wallet-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore is the pgx-backed implementation of Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetByUsername does an exact-match lookup on the normalized username.
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password, first_name, last_name, created_at
	          FROM users
	          WHERE username = $1`

	var user User
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with username '%s' not found", username), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return &user, nil
}

// Create inserts the user and opens their account in a single transaction so
// that every registered user has an account. The unique index on username is
// the race-safe tie-breaker: the losing side of a concurrent duplicate signup
// gets a ConflictError here.
func (s *PostgresStore) Create(ctx context.Context, user *User, openingBalance float64) (*User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `INSERT INTO users (username, password, first_name, last_name)
	              VALUES ($1, $2, $3, $4)
	              RETURNING id, created_at`
	err = tx.QueryRow(ctx, userQuery,
		user.Username, user.HashedPassword, user.FirstName, user.LastName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("username already taken", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	accountQuery := `INSERT INTO accounts (user_id, balance) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, accountQuery, user.ID, openingBalance); err != nil {
		return nil, apperror.NewDatabaseError("failed to open account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit user creation", err)
	}
	return user, nil
}

// UpdateFields applies only the provided fields, building the SET clause
// dynamically. Username and id are never part of the clause.
func (s *PostgresStore) UpdateFields(ctx context.Context, userID int64, fields Fields) error {
	var setClauses []string
	var args []interface{}
	argID := 1

	if fields.Password != nil {
		setClauses = append(setClauses, fmt.Sprintf("password = $%d", argID))
		args = append(args, *fields.Password)
		argID++
	}
	if fields.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", argID))
		args = append(args, *fields.FirstName)
		argID++
	}
	if fields.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", argID))
		args = append(args, *fields.LastName)
		argID++
	}

	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabaseError("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID), nil)
	}
	return nil
}

// Search matches the filter as a case-sensitive substring of first or last
// name. LIKE metacharacters in the filter are escaped so they match literally;
// the trigram indexes on the name columns back the scan.
func (s *PostgresStore) Search(ctx context.Context, filter string) ([]User, error) {
	query := `SELECT id, username, password, first_name, last_name, created_at
	          FROM users
	          WHERE first_name LIKE '%' || $1 || '%' ESCAPE '\'
	             OR last_name LIKE '%' || $1 || '%' ESCAPE '\'
	          ORDER BY id`

	rows, err := s.pool.Query(ctx, query, escapeLike(filter))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search users", err)
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.HashedPassword,
			&user.FirstName,
			&user.LastName,
			&user.CreatedAt,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user row", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read search results", err)
	}
	return result, nil
}

// escapeLike escapes LIKE metacharacters so the filter is treated literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
