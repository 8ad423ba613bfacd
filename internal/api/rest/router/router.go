package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/basebackend-server/internal/api/rest/handler"
	"github.com/dtroode/basebackend-server/internal/api/rest/middleware"
	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

// AuthService combines the session lifecycle used by handlers and the token
// resolution used by the authentication middleware.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Router wires REST handlers and middleware.
type Router struct {
	authService    AuthService
	itemService    handler.ItemService
	fileService    handler.FileService
	health         handler.HealthReporter
	contextManager model.ContextManager
	registry       *prometheus.Registry
	maxUploadBytes int64
	logger         *logger.Logger
}

func New(
	authService AuthService,
	itemService handler.ItemService,
	fileService handler.FileService,
	health handler.HealthReporter,
	contextManager model.ContextManager,
	registry *prometheus.Registry,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		itemService:    itemService,
		fileService:    fileService,
		health:         health,
		contextManager: contextManager,
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register builds the route tree. Routes under the protected subrouter require a session.
func (r *Router) Register() http.Handler {
	root := mux.NewRouter()

	root.Use(
		middleware.RequestID,
		middleware.NewRecovery(r.logger).Handle,
		middleware.NewLogging(r.logger).Handle,
		middleware.NewMetrics(r.registry).Handle,
	)

	root.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})).Methods(http.MethodGet)
	root.HandleFunc("/healthz", handler.NewHealth(r.health).Check).Methods(http.MethodGet)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	root.HandleFunc("/users", authHandler.Register).Methods(http.MethodPost)
	root.HandleFunc("/users/login", authHandler.Login).Methods(http.MethodPost)

	protected := root.NewRoute().Subrouter()
	protected.Use(middleware.NewAuthenticate(r.authService, r.contextManager, r.logger).Handle)

	protected.HandleFunc("/users/me", authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/token", authHandler.Logout).Methods(http.MethodDelete)

	r.registerItemRoutes(protected)
	r.registerFileRoutes(protected)

	return root
}

func (r *Router) registerItemRoutes(m *mux.Router) {
	itemHandler := handler.NewItem(r.itemService, r.contextManager, r.logger)

	m.HandleFunc("/items", itemHandler.Create).Methods(http.MethodPost)
	m.HandleFunc("/items", itemHandler.List).Methods(http.MethodGet)
	m.HandleFunc("/items/{id}", itemHandler.Get).Methods(http.MethodGet)
	m.HandleFunc("/items/{id}", itemHandler.Update).Methods(http.MethodPatch)
}

func (r *Router) registerFileRoutes(m *mux.Router) {
	fileHandler := handler.NewFile(r.fileService, r.contextManager, r.maxUploadBytes, r.logger)

	m.HandleFunc("/files", fileHandler.Upload).Methods(http.MethodPost)
	m.HandleFunc("/files", fileHandler.List).Methods(http.MethodGet)
	m.HandleFunc("/files/{id}", fileHandler.Download).Methods(http.MethodGet)
}
