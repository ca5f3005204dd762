// Package http exposes the application over a JSON API.
package http

import (
	"net/http"

	"github.com/splitpay/splitpay/internal/auth"
	"github.com/splitpay/splitpay/internal/middleware"
	"github.com/splitpay/splitpay/internal/service"
)

// Server holds the services the handlers dispatch to.
type Server struct {
	auth        *service.AuthService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	reports     *service.ReportService
	jwt         *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(
	authSvc *service.AuthService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
	reports *service.ReportService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		auth:        authSvc,
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		reports:     reports,
		jwt:         jwt,
	}
}

// Handler builds the route table and wraps it with the middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(s.jwt, h)
	}

	mux.Handle("GET /api/auth/profile", protected(s.handleProfile))

	mux.Handle("POST /api/groups", protected(s.handleCreateGroup))
	mux.Handle("GET /api/groups", protected(s.handleListGroups))
	mux.Handle("GET /api/groups/activity", protected(s.handleActivity))
	mux.Handle("GET /api/groups/{id}", protected(s.handleGetGroup))
	mux.Handle("PUT /api/groups/{id}/members", protected(s.handleAddMember))

	mux.Handle("POST /api/groups/{id}/expenses", protected(s.handleAddExpense))
	mux.Handle("GET /api/groups/{id}/settlements", protected(s.handleGetPlan))
	mux.Handle("POST /api/groups/{id}/settlements", protected(s.handleRecordSettlement))
	mux.Handle("GET /api/groups/{id}/report", protected(s.handleGroupReport))

	mux.Handle("PUT /api/expenses/{id}", protected(s.handleUpdateExpense))
	mux.Handle("DELETE /api/expenses/{id}", protected(s.handleDeleteExpense))

	mux.Handle("POST /api/reports", protected(s.handleSaveReport))
	mux.Handle("GET /api/reports", protected(s.handleListReports))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	return middleware.Logging(middleware.Metrics(mux, corsMiddleware(mux)))
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
