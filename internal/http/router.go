package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party
// router dependency needed at this route count).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterMinistryRoutes platform-admin ministry management.
func (r *Router) RegisterMinistryRoutes(h *MinistriesHandler) {
	r.Handle("/admin/api/v1/ministries", h.Collection)
	r.Handle("/admin/api/v1/ministries/", h.Item)
}

// RegisterPeopleRoutes people, check-ins, export and the public
// self-registration form.
func (r *Router) RegisterPeopleRoutes(h *PersonHandler) {
	// static paths before the catch-all item route
	r.Handle("/api/v1/people/export", h.Export)
	r.Handle("/api/v1/people", h.Collection)
	r.Handle("/api/v1/people/", h.Item)

	r.Handle("/api/v1/checkins/", h.CompleteCheckin)
	r.Handle("/api/v1/outcomes", h.Outcomes)

	r.Handle("/public/api/v1/register", h.Register)
}

// RegisterUserRoutes ministry staff accounts.
func (r *Router) RegisterUserRoutes(h *UsersHandler) {
	r.Handle("/api/v1/users", h.Collection)
	r.Handle("/api/v1/users/", h.Item)
}

// RegisterDashboardRoutes ministry dashboards.
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler) {
	r.Handle("/api/v1/dashboard/stats", h.Stats)
}

// RegisterHealthRoute liveness probe.
func (r *Router) RegisterHealthRoute() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
