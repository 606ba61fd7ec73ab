// Package users implements the identity core of the wallet backend: the user
// record store, and the register, authenticate, update-profile and search
// operations built on top of it.
package users

import "time"

// User represents a user in the system. The username is the unique identity
// key, stored normalized (trimmed, lowercased). The id never changes after
// creation.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never serialized in responses
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	CreatedAt      time.Time `json:"created_at"`
}
