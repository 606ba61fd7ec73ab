package accounts

import (
	"net/http"

	"github.com/user/wallet-go/apperror"
	"github.com/user/wallet-go/auth"
)

// Handlers wraps the account Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates new Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleGetBalance godoc
// @Summary Get account balance
// @Description Returns the balance of the authenticated user's account.
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} accounts.BalanceResponse "Current balance"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - No account for user"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /account/balance [get]
func (h *Handlers) HandleGetBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
			return
		}

		balance, err := h.service.GetBalance(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, balance)
	}
}
