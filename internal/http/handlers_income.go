package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Incomes())
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	inc, ok := s.ledger.Income(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	in, err := req.input(s.location())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	inc, err := s.ledger.AddIncome(r.Context(), in)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inc)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	in, err := req.input(s.location())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	found, err := s.ledger.UpdateIncome(r.Context(), id, in)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}
	inc, _ := s.ledger.Income(id)
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	found, err := s.ledger.DeleteIncome(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
