// Package api assembles the HTTP surface: routing, middleware and handlers.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/cluelogs/server/internal/api/handlers"
	"github.com/cluelogs/server/internal/api/middleware"
	"github.com/cluelogs/server/internal/auth"
	"github.com/cluelogs/server/internal/config"
	"github.com/cluelogs/server/internal/domain/credentials"
	"github.com/cluelogs/server/internal/domain/events"
	"github.com/cluelogs/server/internal/metrics"
	"github.com/cluelogs/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, repo storage.Repository) http.Handler {
	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, repo.Credentials())

	eventsService := events.NewService(repo.Events())
	ingestService := events.NewIngestService(repo.Events())
	credentialsService := credentials.NewService(repo.Credentials(), tokens)

	eventsHandler := handlers.NewEventsHandler(eventsService, ingestService)
	usersHandler := handlers.NewUsersHandler(credentialsService)

	authenticated := middleware.TokenAuth(tokens)
	limitBody := middleware.RequestSize(middleware.MaxBodySize)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/event", methodMux(map[string]http.Handler{
		http.MethodGet:  authenticated(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: authenticated(limitBody(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/api/v1/event/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: authenticated(http.HandlerFunc(eventsHandler.Get)),
	}))
	mux.Handle("/api/v1/register", methodMux(map[string]http.Handler{
		http.MethodPost: limitBody(http.HandlerFunc(usersHandler.Register)),
	}))
	mux.Handle("/api/v1/user", methodMux(map[string]http.Handler{
		http.MethodGet: authenticated(http.HandlerFunc(usersHandler.List)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
