// Package accounts holds the monetary account attached to every user. The
// identity core only references accounts; it never moves money between them.
package accounts

import (
	"math/rand/v2"
	"time"
)

// Account relates a user to a monetary balance via UserID.
type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// OpeningBalance returns the starting balance credited to a newly registered
// user: between 1 and 10001.
func OpeningBalance() float64 {
	return 1 + rand.Float64()*10000
}
