package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) location() *time.Location {
	return s.ledger.Now().Location()
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Expenses())
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ledger.Expense(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	in, err := req.input(s.location())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	e, err := s.ledger.AddExpense(r.Context(), in)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// handleUpdateExpense replaces the expense. An unknown id still goes through
// the ledger, which treats it as a no-op, and answers 404.
func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	in, err := req.input(s.location())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	found, err := s.ledger.UpdateExpense(r.Context(), id, in)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	e, _ := s.ledger.Expense(id)
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	found, err := s.ledger.DeleteExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
