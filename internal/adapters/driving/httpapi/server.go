// Package httpapi exposes the ingest, query and document services over
// HTTP for an external presentation layer.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/custodia-labs/passage/internal/core/ports/driving"
	"github.com/custodia-labs/passage/internal/logger"
)

// Default server limits.
const (
	DefaultAddr          = "127.0.0.1:8390"
	DefaultMaxUploadSize = 32 << 20 // 32 MiB across all files in one request
	readTimeout          = 60 * time.Second
	writeTimeout         = 60 * time.Second
	shutdownTimeout      = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	ingest    driving.IngestService
	query     driving.QueryService
	documents driving.DocumentService

	addr          string
	maxUploadSize int64
	server        *http.Server
	listener      net.Listener
}

// Option configures the server.
type Option func(*Server)

// WithAddr overrides the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithMaxUploadSize overrides the multipart size limit.
func WithMaxUploadSize(bytes int64) Option {
	return func(s *Server) {
		if bytes > 0 {
			s.maxUploadSize = bytes
		}
	}
}

// NewServer creates an HTTP API server over the given services.
func NewServer(
	ingest driving.IngestService,
	query driving.QueryService,
	documents driving.DocumentService,
	opts ...Option,
) *Server {
	s := &Server{
		ingest:        ingest,
		query:         query,
		documents:     documents,
		addr:          DefaultAddr,
		maxUploadSize: DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// routes builds the request multiplexer.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("DELETE /delete/{id}", s.handleDelete)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	return mux
}

// Start begins listening. It returns once the listener is bound; the
// accept loop runs in a background goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("HTTP server stopped: %v", err)
		}
	}()

	logger.Info("HTTP API listening on %s", s.Addr())
	return nil
}

// Addr returns the bound address, useful when the port was 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
