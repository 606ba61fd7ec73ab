package accounts

import "context"

// BalanceResponse is the payload of the balance read endpoint.
type BalanceResponse struct {
	Balance float64 `json:"balance" example:"5432.10"`
}

// Service exposes balance reads over the account store.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetBalance returns the balance of the account owned by the given user.
func (s *Service) GetBalance(ctx context.Context, userID int64) (*BalanceResponse, error) {
	account, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: account.Balance}, nil
}
