package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/serrors"
)

// PrincipalHeader carries the authenticated account id. Authentication
// itself (sessions, tokens) happens upstream; this layer only transports the
// already-verified identity into the context the services read it from.
const PrincipalHeader = "X-Principal-ID"

func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

func WithPrincipal() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(PrincipalHeader)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			principalID, err := uuid.Parse(header)
			if err != nil {
				WriteError(w, serrors.Validation("PRINCIPAL_INVALID", "principal id is not a valid uuid", ""))
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithPrincipalID(r.Context(), principalID)))
		})
	}
}

func RequestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := logger.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(composables.WithLogger(r.Context(), entry)))
			entry.WithField("duration", time.Since(start).String()).Info("request completed")
		})
	}
}
