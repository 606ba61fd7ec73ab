package users

import "context"

// Fields is a partial update of the mutable user attributes. A nil field is
// not applied. Password, when set, must already be hashed by the caller.
type Fields struct {
	Password  *string
	FirstName *string
	LastName  *string
}

// Store is the credential store: an abstraction over the persistent user
// table keyed by the unique normalized username.
type Store interface {
	// GetByUsername does an exact-match lookup on the normalized username.
	// Returns an apperror NotFoundError when no user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new user and opens their account with the given
	// starting balance. The store-level uniqueness constraint is the
	// enforcement backstop under concurrent registration: a duplicate
	// username fails with an apperror ConflictError even when a prior
	// existence check raced.
	Create(ctx context.Context, user *User, openingBalance float64) (*User, error)

	// UpdateFields applies only the provided fields to the user with the
	// given id. Returns an apperror NotFoundError if the id does not resolve
	// to an existing user.
	UpdateFields(ctx context.Context, userID int64, fields Fields) error

	// Search returns every user whose first or last name contains filter as
	// a case-sensitive substring. The empty filter matches all users.
	// Results are ordered by insertion (id).
	Search(ctx context.Context, filter string) ([]User, error)
}
