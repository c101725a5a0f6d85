package web

import (
	"net/http"
)

type createOrgRequest struct {
	Name string `json:"name"`
}

// handleCreateOrg is POST /orgs.
func (s *Server) handleCreateOrg(w http.ResponseWriter, r *http.Request) {
	req := &createOrgRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	org, err := s.orgs.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, newOrgView(org))
}

// handleListOrgs is GET /orgs. System admins see every org; everyone else
// sees only their own.
func (s *Server) handleListOrgs(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	if !actor.IsSystemAdmin() {
		org, err := s.orgs.Get(r.Context(), actor.OrgID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, []orgView{newOrgView(org)})
		return
	}

	orgs, err := s.orgs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]orgView, 0, len(orgs))
	for _, org := range orgs {
		views = append(views, newOrgView(org))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetOrg is GET /orgs/{org_id}; the gate already resolved the org.
func (s *Server) handleGetOrg(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newOrgView(orgFromContext(r.Context())))
}

// handleDeleteOrg is DELETE /orgs/{org_id}.
func (s *Server) handleDeleteOrg(w http.ResponseWriter, r *http.Request) {
	org := orgFromContext(r.Context())

	if err := s.orgs.Delete(r.Context(), org.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
