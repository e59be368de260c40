package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appfloor "restaurant-seating/internal/app/floor"
	"restaurant-seating/internal/config"
	"restaurant-seating/internal/mcpserver"
	"restaurant-seating/internal/store"
	"restaurant-seating/internal/stream"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the HTTP surface. st may be nil when no journal database is
// configured.
func NewRouter(svc *appfloor.Service, feed *stream.Feed, st *store.Store, cfg config.ServerConfig) *chi.Mux {
	partyHandlers := NewPartyHandlers(svc)
	floorHandlers := NewFloorHandlers(svc)
	adminHandlers := NewAdminHandlers(st, svc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	if cfg.MCPEnabled {
		mcpSrv := mcpserver.New(svc)
		r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Post("/parties", partyHandlers.Arrive())
		r.Get("/parties/{party_id}", partyHandlers.Get())
		r.Get("/parties/{party_id}/table", partyHandlers.Table())
		r.Delete("/parties/{party_id}", partyHandlers.Leave())

		r.Get("/tables", floorHandlers.Tables())
		r.Get("/tables/{table_id}", floorHandlers.Table())
		r.Get("/waitlist", floorHandlers.Waitlist())
		r.Get("/floor", floorHandlers.Summary())
		r.Get("/events", EventsSSEHandler(feed))

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Use(BodyCaptureMiddleware(4096))
			r.Get("/journal", adminHandlers.Journal())
			r.Get("/journal/stats", adminHandlers.JournalStats())
			r.Get("/journal/{event_id}", adminHandlers.JournalEvent())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
