package web

import (
	"net/http"

	"github.com/dmitrijs2005/orgvault/internal/rbac"
)

type createUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// handleCreateUser is POST /orgs/{org_id}/users.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	req := &createUserRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	roles, err := rbac.ToRoles(req.Roles)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	org := orgFromContext(r.Context())
	user, err := s.users.Create(r.Context(), org.ID, req.Username, req.Password, roles)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, newUserView(user))
}

// handleListUsers is GET /orgs/{org_id}/users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	org := orgFromContext(r.Context())

	users, err := s.users.ListByOrg(r.Context(), org.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetUser is GET /orgs/{org_id}/users/{user_id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newUserView(userFromContext(r.Context())))
}

type updateUserStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateUserStatus is PUT /orgs/{org_id}/users/{user_id}/status.
func (s *Server) handleUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	req := &updateUserStatusRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	if err := s.users.UpdateStatus(r.Context(), user.ID, req.Status); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}

type updateUserRolesRequest struct {
	Roles []string `json:"roles"`
}

// handleUpdateUserRoles is PUT /orgs/{org_id}/users/{user_id}/roles.
func (s *Server) handleUpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	req := &updateUserRolesRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	roles, err := rbac.ToRoles(req.Roles)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	if err := s.users.UpdateRoles(r.Context(), user.ID, roles); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}

type setUserPasswordRequest struct {
	Password string `json:"password"`
}

// handleSetUserPassword is PUT /orgs/{org_id}/users/{user_id}/password: the
// administrative reset, no old password required.
func (s *Server) handleSetUserPassword(w http.ResponseWriter, r *http.Request) {
	req := &setUserPasswordRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	if err := s.users.SetPassword(r.Context(), user.ID, req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}

// handleDeleteUser is DELETE /orgs/{org_id}/users/{user_id}.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.users.Delete(r.Context(), user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
