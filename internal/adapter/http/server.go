// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"medtrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	records   *app.RecordsService
	checklist *app.ChecklistService
	dashboard *app.DashboardService
	insights  *app.InsightService
	export    *app.ExportService
	backup    *app.BackupService

	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	disableAuth bool
	webDir      string
}

// New creates a Server wired to the given application services.
func New(stores app.Stores, authSvc *app.AuthService, oidcConfig OIDCConfig, webDir string) *Server {
	return &Server{
		records:    app.NewRecordsService(stores),
		checklist:  app.NewChecklistService(stores),
		dashboard:  app.NewDashboardService(stores),
		insights:   app.NewInsightService(stores),
		export:     app.NewExportService(stores),
		backup:     app.NewBackupService(stores),
		authSvc:    authSvc,
		oidcConfig: oidcConfig,
		webDir:     webDir,
	}
}

// WithoutAuth disables session checks. Test use only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/injections", s.handleInjections)
	api.HandleFunc("/injections/", s.handleInjectionByID)
	api.HandleFunc("/weights", s.handleWeights)
	api.HandleFunc("/weights/", s.handleWeightByID)
	api.HandleFunc("/measurements", s.handleMeasurements)
	api.HandleFunc("/measurements/", s.handleMeasurementByID)
	api.HandleFunc("/settings", s.handleSettings)

	api.HandleFunc("/checklist/today", s.handleChecklistToday)
	api.HandleFunc("/checklist/upcoming", s.handleChecklistUpcoming)
	api.HandleFunc("/checklist/overdue", s.handleChecklistOverdue)

	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/report", s.handleReport)
	api.HandleFunc("/insights", s.handleInsights)

	api.HandleFunc("/export", s.handleExport)
	api.HandleFunc("/backup", s.handleBackup)

	auth := http.NewServeMux()
	auth.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	auth.HandleFunc("/auth/login", s.handleLogin)
	auth.HandleFunc("/auth/logout", s.handleLogout)
	auth.HandleFunc("/auth/setup", s.handleSetupUser)
	auth.HandleFunc("/auth/config", s.handleConfig)
	auth.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	auth.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	auth.Handle("/", s.authMiddleware(api))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", auth))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
