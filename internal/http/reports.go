package http

import (
	"encoding/json"
	"net/http"

	"github.com/splitpay/splitpay/internal/middleware"
)

type saveReportRequest struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	var req saveReportRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	saved, err := s.reports.Save(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.reports.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
