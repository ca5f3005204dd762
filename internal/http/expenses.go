package http

import (
	"net/http"

	"github.com/splitpay/splitpay/internal/middleware"
)

type updateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenses.Update(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.Description, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
