package web

import (
	"net/http"
)

type createVaultRequest struct {
	Name string `json:"name"`
}

// handleCreateVault is POST /orgs/{org_id}/vaults.
func (s *Server) handleCreateVault(w http.ResponseWriter, r *http.Request) {
	req := &createVaultRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	org := orgFromContext(r.Context())
	vault, err := s.vaults.Create(r.Context(), org.ID, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, newVaultView(vault))
}

// handleListVaults is GET /orgs/{org_id}/vaults.
func (s *Server) handleListVaults(w http.ResponseWriter, r *http.Request) {
	org := orgFromContext(r.Context())

	vaults, err := s.vaults.ListByOrg(r.Context(), org.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]vaultView, 0, len(vaults))
	for _, vault := range vaults {
		views = append(views, newVaultView(vault))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetVault is GET /orgs/{org_id}/vaults/{vault_id}. Reading a vault
// also proves the server's master key still opens it: a key mismatch fails
// loudly here instead of on the first entry read.
func (s *Server) handleGetVault(w http.ResponseWriter, r *http.Request) {
	vault := vaultFromContext(r.Context())

	if err := s.vaults.VerifyMasterKey(r.Context(), vault.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newVaultView(vault))
}

// handleDeleteVault is DELETE /orgs/{org_id}/vaults/{vault_id}.
func (s *Server) handleDeleteVault(w http.ResponseWriter, r *http.Request) {
	vault := vaultFromContext(r.Context())

	if err := s.vaults.Delete(r.Context(), vault.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
