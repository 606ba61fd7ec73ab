package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/user/wallet-go/apperror"
)

// memStore is an in-memory Store used by service and handler tests. It
// enforces the same contract as PostgresStore: unique usernames, NotFound on
// missing ids, insertion-ordered case-sensitive substring search.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	records  []*User // insertion order
	balances map[int64]float64
	calls    int // total store invocations, for no-store-access assertions
}

func newMemStore() *memStore {
	return &memStore{balances: make(map[int64]float64)}
}

func (s *memStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for _, u := range s.records {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("user with username '%s' not found", username), nil)
}

func (s *memStore) Create(ctx context.Context, user *User, openingBalance float64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for _, u := range s.records {
		if u.Username == user.Username {
			return nil, apperror.NewConflictError("username already taken", nil)
		}
	}

	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	copied := *user
	s.records = append(s.records, &copied)
	s.balances[user.ID] = openingBalance
	return user, nil
}

func (s *memStore) UpdateFields(ctx context.Context, userID int64, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for _, u := range s.records {
		if u.ID == userID {
			if fields.Password != nil {
				u.HashedPassword = *fields.Password
			}
			if fields.FirstName != nil {
				u.FirstName = *fields.FirstName
			}
			if fields.LastName != nil {
				u.LastName = *fields.LastName
			}
			return nil
		}
	}
	return apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID), nil)
}

func (s *memStore) Search(ctx context.Context, filter string) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	var result []User
	for _, u := range s.records {
		if strings.Contains(u.FirstName, filter) || strings.Contains(u.LastName, filter) {
			result = append(result, *u)
		}
	}
	return result, nil
}

// get returns the stored record by id for assertions, bypassing call counting.
func (s *memStore) get(userID int64) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.records {
		if u.ID == userID {
			copied := *u
			return &copied
		}
	}
	return nil
}
