package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/wallet-go/apperror"
	"github.com/user/wallet-go/auth"
	"github.com/user/wallet-go/validation"
)

// Handlers wraps the identity Service to provide HTTP handlers. Every handler
// follows the same ordering: decode, validate, then call the service; a
// validation failure never reaches the store.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleSignup godoc
// @Summary User Registration
// @Description Registers a new user, opens their account and returns a session token.
// @Tags User
// @Accept json
// @Produce json
// @Param signupBody body users.SignupRequest true "User registration details"
// @Success 200 {object} users.TokenResponse "User created, token issued"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - Username already taken"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Validate(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleSignin godoc
// @Summary User Login
// @Description Verifies credentials and returns a session token.
// @Tags User
// @Accept json
// @Produce json
// @Param signinBody body users.SigninRequest true "User login credentials"
// @Success 200 {object} users.TokenResponse "Login successful, token issued"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/signin [post]
func (h *Handlers) HandleSignin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Validate(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Authenticate(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleUpdate godoc
// @Summary Update profile
// @Description Updates any subset of password, firstName and lastName for the authenticated user.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateBody body users.UpdateRequest true "Fields to update"
// @Success 200 {object} users.MessageResponse "Updated successfully"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User no longer exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/ [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
			return
		}

		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Validate(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.UpdateProfile(r.Context(), userID, req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Updated successfully"})
	}
}

// HandleSearch godoc
// @Summary Search users
// @Description Returns users whose first or last name contains the filter substring. Empty filter matches all.
// @Tags User
// @Produce json
// @Param filter query string false "Substring to match against first or last name"
// @Success 200 {object} users.SearchResponse "Matching users, passwords excluded"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/bulk [get]
func (h *Handlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")

		found, err := h.service.Search(r.Context(), filter)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, SearchResponse{User: found})
	}
}
