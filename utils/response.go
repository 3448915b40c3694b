package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhijan2402/tomarket-admin/lifecycle"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteLifecycleError maps the engine's error taxonomy onto HTTP statuses.
// Unknown errors become a generic 500 without leaking internals.
func WriteLifecycleError(w http.ResponseWriter, err error) {
	var (
		verr *lifecycle.ValidationError
		aerr *lifecycle.AuthorizationError
		nerr *lifecycle.NotFoundError
		terr *lifecycle.InvalidTransitionError
		cerr *lifecycle.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: verr.Reason})
	case errors.As(err, &aerr):
		WriteJSON(w, http.StatusForbidden, APIResponse{Success: false, Message: aerr.Reason})
	case errors.As(err, &nerr):
		WriteJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: nerr.Error()})
	case errors.As(err, &terr):
		WriteJSON(w, http.StatusUnprocessableEntity, APIResponse{Success: false, Message: terr.Error()})
	case errors.As(err, &cerr):
		WriteJSON(w, http.StatusConflict, APIResponse{Success: false, Message: cerr.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "Something went wrong, please try again"})
	}
}

// GetStringValue returns the value of a nullable string pointer or empty string if nil
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
