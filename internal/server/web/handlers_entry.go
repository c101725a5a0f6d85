package web

import (
	"net/http"

	"github.com/dmitrijs2005/orgvault/internal/server/services"
)

type entryFieldsRequest struct {
	Label      string  `json:"label"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Notes      *string `json:"notes"`
	ExtraNotes *string `json:"extra_notes"`
}

func (req *entryFieldsRequest) toFields() *services.EntryFields {
	return &services.EntryFields{
		Label:      req.Label,
		Username:   req.Username,
		Password:   req.Password,
		Notes:      req.Notes,
		ExtraNotes: req.ExtraNotes,
	}
}

// handleCreateEntry is POST /vaults/{vault_id}/entries.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	req := &entryFieldsRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	vault := vaultFromContext(r.Context())
	entry, err := s.entries.Create(r.Context(), vault.ID, req.toFields())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, newEntryListView(entry))
}

// handleListEntries is GET /vaults/{vault_id}/entries. Listings show labels
// and metadata only; no cipher field is ever opened here.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	vault := vaultFromContext(r.Context())

	entries, err := s.entries.ListByVault(r.Context(), vault.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]entryListView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEntryListView(entry))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetEntry is GET /vaults/{vault_id}/entries/{entry_id}: the only
// route that returns opened secrets.
func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry := entryFromContext(r.Context())

	secrets, err := s.entries.Get(r.Context(), entry.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newEntryView(secrets))
}

// handleUpdateEntry is PUT /vaults/{vault_id}/entries/{entry_id}. Fields are
// replaced wholesale; an omitted field is cleared.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	req := &entryFieldsRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := entryFromContext(r.Context())
	updated, err := s.entries.Update(r.Context(), entry.ID, req.toFields())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newEntryListView(updated))
}

type updateEntryStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateEntryStatus is PUT /vaults/{vault_id}/entries/{entry_id}/status.
func (s *Server) handleUpdateEntryStatus(w http.ResponseWriter, r *http.Request) {
	req := &updateEntryStatusRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := entryFromContext(r.Context())
	if err := s.entries.SetStatus(r.Context(), entry.ID, req.Status); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}

// handleDeleteEntry is DELETE /vaults/{vault_id}/entries/{entry_id}.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	entry := entryFromContext(r.Context())

	if err := s.entries.Delete(r.Context(), entry.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
