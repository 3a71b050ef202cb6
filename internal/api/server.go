// Package api provides the REST API server for browsing laws and
// requesting version synopses.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/config"
	"github.com/aleister1102/synopse/internal/datastore"
	"github.com/aleister1102/synopse/internal/synopsis"
)

// Server wraps the HTTP server and its route handlers.
type Server struct {
	config  *config.ServerConfig
	handler *Handler
	logger  zerolog.Logger
	httpSrv *http.Server
}

// ServerBuilder provides a fluent interface for creating a Server
type ServerBuilder struct {
	config    *config.ServerConfig
	store     *datastore.LawStore
	generator *synopsis.Generator
	logger    zerolog.Logger
}

// NewServerBuilder creates a new ServerBuilder
func NewServerBuilder(logger zerolog.Logger) *ServerBuilder {
	return &ServerBuilder{
		logger: logger.With().Str("component", "APIServer").Logger(),
	}
}

// WithServerConfig sets the server configuration
func (b *ServerBuilder) WithServerConfig(cfg *config.ServerConfig) *ServerBuilder {
	b.config = cfg
	return b
}

// WithStore sets the law store
func (b *ServerBuilder) WithStore(store *datastore.LawStore) *ServerBuilder {
	b.store = store
	return b
}

// WithGenerator sets the synopsis generator
func (b *ServerBuilder) WithGenerator(generator *synopsis.Generator) *ServerBuilder {
	b.generator = generator
	return b
}

// Build creates a new Server instance
func (b *ServerBuilder) Build() (*Server, error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "server config cannot be nil")
	}
	if b.store == nil {
		return nil, common.NewValidationError("store", b.store, "law store cannot be nil")
	}
	if b.generator == nil {
		return nil, common.NewValidationError("generator", b.generator, "synopsis generator cannot be nil")
	}

	server := &Server{
		config:  b.config,
		handler: NewHandler(b.store, b.generator, b.logger),
		logger:  b.logger,
	}
	server.httpSrv = &http.Server{
		Addr:         b.config.ListenAddress,
		Handler:      requestLogger(b.logger, server.Routes()),
		ReadTimeout:  time.Duration(b.config.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(b.config.WriteTimeoutSec) * time.Second,
	}
	return server, nil
}

// Routes builds the route table.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handler.handleHealth)
	mux.HandleFunc("GET /api/laws", s.handler.handleLaws)
	mux.HandleFunc("GET /api/laws/{short}/details", s.handler.handleLawDetails)
	mux.HandleFunc("GET /api/synopsis/{law}/{v1}/{v2}/{paragraph...}", s.handler.handleSynopsis)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	})

	return mux
}

// Start runs the server until ctx is cancelled, then shuts it down
// gracefully within the configured grace period.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("API server listening")
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return common.WrapError(err, "server failed")
		}
		return nil
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.ShutdownGraceSec)*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return common.WrapError(err, "graceful shutdown failed")
		}
		return nil
	}
}
