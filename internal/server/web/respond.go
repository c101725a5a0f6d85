package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			s.logger.Error(context.Background(), "error encoding response", "error", err)
		}
	}
}

// writeError maps service errors to HTTP statuses. Anything unrecognized is
// an internal error: logged with detail, answered with a generic body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidRoles *rbac.InvalidRolesError
	var invalidPerms *rbac.InvalidPermissionsError

	switch {
	case common.IsValidation(err),
		errors.As(err, &invalidRoles),
		errors.As(err, &invalidPerms):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})

	case errors.Is(err, common.ErrorInvalidPassword),
		errors.Is(err, common.ErrorInactiveUser),
		errors.Is(err, common.ErrorInvalidAuthToken),
		errors.Is(err, common.ErrorInvalidOrg),
		errors.Is(err, common.ErrorUserNotFound),
		errors.Is(err, common.ErrorInsufficientAuthScope):
		s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})

	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorInsufficientVaultScope):
		s.writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})

	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})

	default:
		s.logger.Error(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("invalid request body")
	}
	return nil
}
