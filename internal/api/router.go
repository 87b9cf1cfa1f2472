package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Trade-Journal-Backend/internal/api/middleware"
	"github.com/ndewijer/Trade-Journal-Backend/internal/config"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System    *service.SystemService
	Ledger    *service.LedgerService
	Dashboard *service.DashboardService
	Upload    *service.UploadService
	Settings  *service.SettingsService
	Snapshot  *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/ledger", func(r chi.Router) {
			ledgerHandler := handlers.NewLedgerHandler(svc.Ledger, svc.Upload, cfg.Extraction.UploadMaxBytes)
			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

			r.Route("/event", func(r chi.Router) {
				r.Get("/", ledgerHandler.ListEvents)
				r.Post("/", ledgerHandler.CreateEvent)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", ledgerHandler.GetEvent)
					r.Delete("/", ledgerHandler.DeleteEvent)
				})
			})
			r.Post("/upload", ledgerHandler.Upload)

			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/history", dashboardHandler.History)
			r.Get("/calendar", dashboardHandler.Calendar)
			r.Get("/projection", dashboardHandler.Projection)
			r.Get("/dashboard", dashboardHandler.Dashboard)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svc.Settings)
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/starting-capital", settingsHandler.UpdateStartingCapital)
			r.Put("/extraction-key", settingsHandler.UpdateExtractionKey)
		})

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot)
			r.Get("/", snapshotHandler.ListSnapshots)
			r.Post("/", snapshotHandler.TakeSnapshot)
		})
	})

	return r
}
