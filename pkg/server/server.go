// Package server exposes the tokenizer over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// Server is the segmentation HTTP server.
type Server struct {
	config    *ServerConfig
	tokenizer *tokenizer.RuleTokenizer
	logger    *zap.Logger
	metrics   *Metrics

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// HTTP server
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex

	// Open WebSocket sessions, closed on Stop
	sessions   map[string]*websocket.Conn
	sessionsMu sync.Mutex

	// Context for shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server. A nil config or tokenizer config falls
// back to the defaults and a nil logger discards everything.
func NewServer(config *ServerConfig, tokConfig *tokenizer.RuleConfig, logger *zap.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		config:    config,
		tokenizer: tokenizer.NewRuleTokenizer(tokConfig),
		logger:    logger,
		metrics:   NewMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[string]*websocket.Conn),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Tokenizer returns the tokenizer whose config supplies request defaults.
func (s *Server) Tokenizer() tokenizer.Tokenizer {
	return s.tokenizer
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestID)
	r.Use(s.withAccessLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.withAuth)
		r.Post("/tokenize", s.handleTokenize)
		r.Post("/sentences", s.handleSentences)
		r.Post("/batch", s.handleBatch)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// Start starts the server.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		// Server started successfully
		return nil
	}
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	// Close all sessions
	s.sessionsMu.Lock()
	for id, conn := range s.sessions {
		conn.Close()
		delete(s.sessions, id)
	}
	s.sessionsMu.Unlock()

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	// Shutdown HTTP server
	if httpServer != nil {
		s.logger.Info("server stopping")
		return httpServer.Shutdown(ctx)
	}
	return nil
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		if endpoint != "/metrics" {
			s.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
			s.metrics.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
		}
		s.logger.Debug("request",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.AuthToken != "" {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") ||
				strings.TrimPrefix(authHeader, "Bearer ") != s.config.AuthToken {
				s.writeError(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerSession(id string, conn *websocket.Conn) {
	s.sessionsMu.Lock()
	s.sessions[id] = conn
	s.sessionsMu.Unlock()
	s.metrics.wsSessions.Inc()
}

func (s *Server) unregisterSession(id string) {
	s.sessionsMu.Lock()
	delete(s.sessions, id)
	s.sessionsMu.Unlock()
	s.metrics.wsSessions.Dec()
}

// SessionCount returns the number of open WebSocket sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}
