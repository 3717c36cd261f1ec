package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"spots-server/config"
)

type SpotsHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	config    config.HTTPConfig
}

func NewSpotsHttpServer(router *Router, muxRouter *mux.Router, cfg config.HTTPConfig) *SpotsHttpServer {
	return &SpotsHttpServer{
		router:    router,
		muxRouter: muxRouter,
		config:    cfg,
	}
}

// Handler registers the routes and wraps them with CORS and access logging.
func (s *SpotsHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", config.SESSION_HEADER}),
	)
	return handlers.LoggingHandler(os.Stdout, cors(s.muxRouter))
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *SpotsHttpServer) Start() {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine so it doesn't block
	go func() {
		log.WithField("prefix", "http-server").Infof("Starting server on %s", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("prefix", "http-server").Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for a signal to shut down
	<-stop
	log.WithField("prefix", "http-server").Info("Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("prefix", "http-server").Fatalf("Server forced to shutdown: %v", err)
	}

	log.WithField("prefix", "http-server").Info("Server exiting")
}
