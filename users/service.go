package users

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/wallet-go/accounts"
	"github.com/user/wallet-go/apperror"
	"github.com/user/wallet-go/auth"
	"github.com/user/wallet-go/config"
)

// Service orchestrates the identity operations: register, authenticate,
// update-profile and search. It holds no cross-request state; the store and
// the process-wide signing secret are its only dependencies.
type Service struct {
	store      Store
	authConfig config.AuthConfig
}

// NewService creates a new Service.
func NewService(store Store, authConfig config.AuthConfig) *Service {
	return &Service{
		store:      store,
		authConfig: authConfig,
	}
}

// NormalizeUsername produces the unique identity key: trimmed and lowercased.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates a new user and issues their first session token. Callers
// must have validated req already; the ordering here is existence check, then
// create. The store's uniqueness constraint backstops the pre-check under
// concurrent registration, surfacing the same ConflictError.
func (s *Service) Register(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	username := NormalizeUsername(req.Username)

	_, err := s.store.GetByUsername(ctx, username)
	if err == nil {
		return nil, apperror.NewConflictError("username already taken", nil)
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username:       username,
		HashedPassword: string(hashedPassword),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
	}

	created, err := s.store.Create(ctx, user, accounts.OpeningBalance())
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(created.ID, []byte(s.authConfig.JWTSecret), s.authConfig.TokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{
		Message: "User created successfully",
		Token:   token,
	}, nil
}

// Authenticate verifies a credential pair and issues a session token. An
// unknown username and a wrong password yield the same response so that the
// endpoint cannot be used to enumerate registered usernames.
func (s *Service) Authenticate(ctx context.Context, req SigninRequest) (*TokenResponse, error) {
	user, err := s.store.GetByUsername(ctx, NormalizeUsername(req.Username))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.authConfig.JWTSecret), s.authConfig.TokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{Token: token}, nil
}

// UpdateProfile applies the provided subset of password, firstName and
// lastName to the authenticated user. The user id always comes from the
// verified token, never from the payload. With no fields provided the store
// is not touched at all.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateRequest) error {
	var fields Fields

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperror.NewInternalError("failed to hash password", err)
		}
		hashed := string(hashedPassword)
		fields.Password = &hashed
	}
	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		fields.FirstName = &firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		fields.LastName = &lastName
	}

	if fields.Password == nil && fields.FirstName == nil && fields.LastName == nil {
		return nil
	}

	return s.store.UpdateFields(ctx, userID, fields)
}

// Search returns the public projection of every user whose first or last
// name contains the filter as a case-sensitive substring. The empty filter
// matches everyone.
func (s *Service) Search(ctx context.Context, filter string) ([]UserSummary, error) {
	found, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]UserSummary, 0, len(found))
	for _, user := range found {
		result = append(result, UserSummary{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
	return result, nil
}
