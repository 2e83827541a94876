package api

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"kadoshrent/internal/i18n"
)

//go:embed static
var staticFiles embed.FS

type RouterConfig struct {
	Catalog       *CatalogHandler
	Reservations  *ReservationHandler
	Limiter       *RateLimiter
	DefaultLocale string
	CORSOrigin    string
	Log           *logrus.Logger
}

// NewRouter wires every route and wraps the router in the shared middleware
// stack. The locale guard sits outside mux so unmatched paths are redirected
// too.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(instrument)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, cfg.Log, http.StatusOK, HealthResponse{Status: "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Handle("/robots.txt", http.FileServer(http.FS(static))).Methods("GET")

	// Public API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/vehicles", cfg.Catalog.ListVehicles).Methods("GET")
	api.HandleFunc("/vehicles/{id}", cfg.Catalog.GetVehicle).Methods("GET")
	api.HandleFunc("/locales/{lang}", cfg.Catalog.GetLocale).Methods("GET")
	api.HandleFunc("/time-slots", cfg.Catalog.TimeSlots).Methods("GET")

	reservations := api.PathPrefix("/reservations").Subrouter()
	reservations.Use(cfg.Limiter.Middleware)
	reservations.HandleFunc("", cfg.Reservations.CreateReservation).Methods("POST")
	reservations.HandleFunc("/ics", cfg.Reservations.DownloadCalendar).Methods("POST")

	// Localized pages
	lang := "{lang:" + strings.Join(i18n.SupportedLocales, "|") + "}"
	r.HandleFunc("/"+lang, cfg.Catalog.Home).Methods("GET")
	r.HandleFunc("/"+lang+"/vehicle/{vehicleId}", cfg.Catalog.VehicleDetail).Methods("GET")

	var h http.Handler = LocaleGuard(cfg.DefaultLocale)(r)
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(cfg.Log), handlers.PrintRecoveryStack(true))(h)
	h = handlers.CombinedLoggingHandler(cfg.Log.Writer(), h)
	h = handlers.ProxyHeaders(h)
	return otelhttp.NewHandler(h, "kadosh-rent")
}
