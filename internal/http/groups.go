package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/splitpay/splitpay/internal/middleware"
	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/report"
	"github.com/splitpay/splitpay/internal/service"
)

type createGroupRequest struct {
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Members  []string `json:"members"`
}

type createGroupResponse struct {
	Group         *models.Group `json:"group"`
	UnknownEmails []string      `json:"unknownEmails,omitempty"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	callerID := middleware.GetUserID(r.Context())
	group, unknown, err := s.groups.Create(r.Context(), callerID, req.Name, req.Currency, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createGroupResponse{Group: group, UnknownEmails: unknown})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.groups.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	details, err := s.groups.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type addMemberRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.groups.Activity(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req service.AddExpenseInput
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenses.Add(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.settlements.Plan(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	var transfer models.Transfer
	if err := decode(r, &transfer); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenses.RecordSettlement(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), transfer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleGroupReport(w http.ResponseWriter, r *http.Request) {
	plan, err := s.settlements.Plan(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	names := make(map[string]string, len(plan.Balances))
	for _, b := range plan.Balances {
		names[b.ID] = b.Name
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", plan.GroupName+"-settlement.pdf"))
	if err := report.WritePDF(w, report.Summary{
		Title:      plan.GroupName + " Settlement Report",
		Currency:   plan.Currency,
		TotalSpent: plan.TotalSpent,
		Balances:   plan.Balances,
		Transfers:  plan.Transfers,
		Names:      names,
	}); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("Failed to render settlement report", "group_id", plan.GroupID, "error", err)
	}
}
