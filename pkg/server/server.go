package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/configuration"
)

type HTTPServer struct {
	server *http.Server
	logger *logrus.Logger
}

// New builds the router from the application's registered controllers and
// wraps it with the ambient middleware stack.
func New(cfg *configuration.Configuration, app application.Application) *HTTPServer {
	router := mux.NewRouter()
	router.Use(
		RequestLogger(app.Logger()),
		WithPool(app.DB()),
		WithPrincipal(),
	)
	app.RegisterRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", PrincipalHeader},
		AllowCredentials: true,
	})

	return &HTTPServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
			Handler:           corsHandler.Handler(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: app.Logger(),
	}
}

// Start serves until the context is cancelled, then drains in-flight
// requests.
func (s *HTTPServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("http server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
