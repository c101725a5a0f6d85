package web

import (
	"net/http"

	"github.com/dmitrijs2005/orgvault/internal/server/auth"
)

type loginResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

// handleLogin is POST /auth/token. Failures are deliberately uniform: an
// unknown username answers exactly like a wrong password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	credentials := &auth.Credentials{}
	if err := decodeJSON(r, credentials); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp, err := s.resolver.Authenticate(r.Context(), credentials)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{User: newUserView(resp.User), Token: resp.Token})
}

// handleProfile is GET /profile: the authenticated user's own record.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	s.writeJSON(w, http.StatusOK, newUserView(actor.User))
}

type permissionsResponse struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// handleProfilePermissions is GET /profile/permissions: the derived
// permission set, already deduplicated and sorted.
func (s *Server) handleProfilePermissions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	resp := permissionsResponse{
		Roles:       make([]string, 0, len(actor.Roles)),
		Permissions: make([]string, 0, len(actor.Permissions)),
	}
	for _, role := range actor.Roles {
		resp.Roles = append(resp.Roles, string(role))
	}
	for _, perm := range actor.Permissions {
		resp.Permissions = append(resp.Permissions, string(perm))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// handleChangePassword is POST /profile/password: self-service password
// change, old password verified first.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	req := &changePasswordRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	actor := actorFromContext(r.Context())
	if err := s.users.ChangePassword(r.Context(), actor.UserID, req.OldPassword, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
