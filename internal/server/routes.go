package server

import (
	"net/http"
)

// setupRoutes registers all API routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// System endpoints
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// Gather pipeline
	mux.HandleFunc("/api/data/gather", s.app.DataHandler.GatherHandler) // POST - start gather run
	mux.HandleFunc("/api/data/status", s.app.DataHandler.StatusHandler) // GET  - poll run state

	// Reconciled records
	mux.HandleFunc("/api/malls", s.app.MallHandler.ListMallsHandler) // GET - list malls (?region= filter)
	mux.HandleFunc("/api/malls/", s.app.MallHandler.GetMallHandler)  // GET /{id} - mall with stores
	mux.HandleFunc("/api/stores", s.app.MallHandler.ListStoresHandler)

	// Search
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchMallsHandler) // POST - rank malls by shopping list

	// Everything else is a 404
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
