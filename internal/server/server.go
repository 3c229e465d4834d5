package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"equipment_management/internal/repository"
	"equipment_management/internal/service"
)

const sessionName = "session"

type Server struct {
	router *mux.Router
	store  *sessions.CookieStore

	users      repository.UserRepository
	equipment  repository.EquipmentRepository
	drivers    repository.DriverRepository
	requests   repository.RequestRepository
	dashboard  repository.DashboardRepository
	timesheets *service.TimesheetService

	staticDir string
}

func New(
	sessionSecret string,
	staticDir string,
	users repository.UserRepository,
	equipment repository.EquipmentRepository,
	drivers repository.DriverRepository,
	requests repository.RequestRepository,
	dashboard repository.DashboardRepository,
	timesheets *service.TimesheetService,
) *Server {
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = false // set to true behind HTTPS
	store.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		router:     mux.NewRouter(),
		store:      store,
		users:      users,
		equipment:  equipment,
		drivers:    drivers,
		requests:   requests,
		dashboard:  dashboard,
		timesheets: timesheets,
		staticDir:  staticDir,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/api/login", s.loginHandler).Methods("POST")
	r.HandleFunc("/api/logout", s.requireAuth(s.logoutHandler)).Methods("POST")
	r.HandleFunc("/api/me", s.checkAuthHandler).Methods("GET")

	r.HandleFunc("/api/equipment", s.requireAuth(s.listEquipmentHandler)).Methods("GET")
	r.HandleFunc("/api/equipment", s.requireAuth(s.createEquipmentHandler)).Methods("POST")
	r.HandleFunc("/api/equipment/{id}", s.requireAuth(s.updateEquipmentHandler)).Methods("PUT")
	r.HandleFunc("/api/drivers", s.requireAuth(s.listDriversHandler)).Methods("GET")
	r.HandleFunc("/api/drivers", s.requireAuth(s.createDriverHandler)).Methods("POST")
	r.HandleFunc("/api/requests", s.requireAuth(s.listRequestsHandler)).Methods("GET")
	r.HandleFunc("/api/requests", s.requireAuth(s.createRequestHandler)).Methods("POST")
	r.HandleFunc("/api/requests/{id}", s.requireAuth(s.updateRequestHandler)).Methods("PUT")
	r.HandleFunc("/api/dashboard/stats", s.requireAuth(s.dashboardStatsHandler)).Methods("GET")

	r.HandleFunc("/api/timesheets", s.requireAuth(s.createTimesheetHandler)).Methods("POST")
	r.HandleFunc("/api/timesheets/pending", s.requireAuth(s.listPendingHandler)).Methods("GET")
	r.HandleFunc("/api/timesheets/days/{dayId}", s.requireAuth(s.updateDayHandler)).Methods("PATCH")
	r.HandleFunc("/api/timesheets/{id}", s.requireAuth(s.getTimesheetHandler)).Methods("GET")
	r.HandleFunc("/api/timesheets/{id}/clock-in", s.requireAuth(s.clockInHandler)).Methods("POST")
	r.HandleFunc("/api/timesheets/{id}/clock-out", s.requireAuth(s.clockOutHandler)).Methods("POST")
	r.HandleFunc("/api/timesheets/{id}/submit", s.requireAuth(s.submitHandler)).Methods("POST")
	r.HandleFunc("/api/timesheets/{id}/approve", s.requireAuth(s.approveHandler)).Methods("POST")

	// Built frontend with SPA fallback.
	r.PathPrefix("/").Handler(spaHandler{staticDir: s.staticDir})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// spaHandler serves files from staticDir and falls back to index.html for
// client-side routes.
type spaHandler struct {
	staticDir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, index)
}
