package http

import (
	"context"
	"net/http"
	"time"

	"github.com/salesflow/crm/pkg/logger"
)

// Pinger reports whether a dependency is reachable; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RootHandler answers the health probe and the catch-all route.
type RootHandler struct {
	db          Pinger
	apiEndpoint string
	version     string
	logger      logger.Logger
}

func NewRootHandler(db Pinger, apiEndpoint, version string, logger logger.Logger) *RootHandler {
	return &RootHandler{db: db, apiEndpoint: apiEndpoint, version: version, logger: logger}
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/healthz", methods{http.MethodGet: h.healthz})
	mux.HandleFunc("/", h.Handle)
}

// Handle serves the service banner on / and a JSON 404 for anything unrouted.
func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service":      "salesflow",
		"version":      h.version,
		"api_endpoint": h.apiEndpoint,
	})
}

func (h *RootHandler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithField("error", err.Error()).Error("Health check failed: database unreachable")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "version": h.version})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}
