package server

import (
	"net/http"

	"location-service/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route describes one endpoint. Routes with RequireKey run behind the API key gate.
type Route struct {
	Name       string
	Method     string
	Path       string
	RequireKey bool
	Handler    http.HandlerFunc
}

// Services is what the router needs from the domain layer.
type Services interface {
	handlers.AccountService
	handlers.Authenticator
}

func routes(accounts Services, ledger handlers.LocationLedger) []Route {
	authHandler := handlers.NewAuthHandler(accounts)
	locationHandler := handlers.NewLocationHandler(ledger)

	return []Route{
		{Name: "HealthCheck", Method: http.MethodGet, Path: "/health", Handler: handlers.Health},
		{Name: "Metrics", Method: http.MethodGet, Path: "/metrics", Handler: promhttp.Handler().ServeHTTP},
		{Name: "Register", Method: http.MethodPost, Path: "/api/register", Handler: authHandler.Register},
		{Name: "Login", Method: http.MethodPost, Path: "/api/login", Handler: authHandler.Login},
		{Name: "SaveLocations", Method: http.MethodPost, Path: "/api/location", RequireKey: true, Handler: locationHandler.SaveLocations},
		{Name: "UploadLocations", Method: http.MethodPost, Path: "/api/locations/upload", RequireKey: true, Handler: locationHandler.UploadLocations},
		{Name: "GetLocations", Method: http.MethodGet, Path: "/api/locations", RequireKey: true, Handler: locationHandler.GetLocations},
	}
}

// NewRouter wires every endpoint. Unknown paths and known paths hit with the
// wrong method both answer 404.
func NewRouter(accounts Services, ledger handlers.LocationLedger) http.Handler {
	router := mux.NewRouter()
	router.Use(handlers.Instrument)

	gate := handlers.Gate(accounts)
	for _, rt := range routes(accounts, ledger) {
		var h http.Handler = rt.Handler
		if rt.RequireKey {
			h = gate(h)
		}
		router.Handle(rt.Path, h).Methods(rt.Method).Name(rt.Name)
	}

	notFound := handlers.Instrument(http.HandlerFunc(handlers.NotFound))
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	return handlers.Recover(router)
}
