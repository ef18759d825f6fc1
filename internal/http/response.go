package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"financetracker/internal/core"
	"financetracker/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

var validationErrors = []error{
	errInvalidBody,
	errMissingAmount,
	core.ErrInvalidDate,
	errInvalidMonth,
	core.ErrInvalidAmount,
	core.ErrInvalidCategory,
	core.ErrEmptyDescription,
	core.ErrEmptySource,
	core.ErrDescriptionTooLong,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeLedgerError maps err to 400 for invalid input and 500 otherwise.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Ledger operation failed",
		log.FieldPath, r.URL.Path, log.FieldError, err)
	writeError(w, http.StatusInternalServerError, "failed to save changes")
}
