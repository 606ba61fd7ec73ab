package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/wallet-go/apperror"
)

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError resolves any error into a standardized JSON error response.
// Errors that are not already an *apperror.AppError are wrapped as internal
// errors so that nothing propagates as an unhandled fault.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
