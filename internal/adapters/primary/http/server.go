package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// HTTPLogger provides leveled logging for the HTTP server
type HTTPLogger struct {
	component string
	level     entities.LogLevel
}

// NewHTTPLogger creates a new HTTP logger instance
func NewHTTPLogger(component string, level entities.LogLevel) *HTTPLogger {
	if level == "" {
		level = entities.LogLevelInfo
	}
	return &HTTPLogger{component: component, level: level}
}

var levelRank = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	return levelRank[msgLevel] >= levelRank[l.level]
}

// Debug logs debug messages
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		log.Printf("[DEBUG] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Info logs informational messages
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		log.Printf("[INFO] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Warn logs warning messages
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		log.Printf("[WARN] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Error logs error messages
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		log.Printf("[ERROR] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Server hosts the preview API and websocket endpoint
type Server struct {
	server    *http.Server
	hub       *ClientHub
	presenter ports.PresentationService
	config    *entities.ServerConfig
	logger    *HTTPLogger
	mu        sync.RWMutex
	running   bool
}

// NewServer creates a new HTTP preview server.
// config must not be nil.
func NewServer(presenter ports.PresentationService, config *entities.ServerConfig, logging *entities.LoggingConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}

	level := entities.LogLevelInfo
	if logging != nil {
		level = logging.GetLevel()
	}

	return &Server{
		presenter: presenter,
		hub:       NewClientHub(),
		config:    config,
		logger:    NewHTTPLogger("server", level),
	}
}

// Start starts the HTTP server and returns immediately
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.hub.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	addr := s.server.Addr
	s.mu.Unlock()

	go func() {
		s.logger.Info("preview server listening on %s", addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// NotifyClients sends an update event to all connected preview clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.hub.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/ws", s.handleWebSocket)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/presentation", s.handlePresentation).Methods(http.MethodGet)
	api.HandleFunc("/slides", s.handleSlides).Methods(http.MethodGet)
	api.HandleFunc("/slides/{index:[0-9]+}", s.handleGetSlide).Methods(http.MethodGet)
	api.HandleFunc("/slides/{index:[0-9]+}", s.handleUpdateSlide).Methods(http.MethodPut)
	api.HandleFunc("/export/markdown", s.handleExportMarkdown).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = securityHeadersMiddleware(handler)
	handler = loggingMiddleware(handler, s.logger)
	handler = recoveryMiddleware(handler, s.logger)

	return handler
}

var _ ports.ClientNotifier = (*Server)(nil)
