package accounts

import "context"

// Store reads accounts by their owning user. Account rows are created by the
// user store at registration time.
type Store interface {
	// GetByUserID returns the account owned by the given user, or an
	// apperror NotFoundError if none exists.
	GetByUserID(ctx context.Context, userID int64) (*Account, error)
}
