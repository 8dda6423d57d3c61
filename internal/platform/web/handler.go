// Package web serves Knight Runner over WebSocket. Each connection gets its
// own simulation ticking at a fixed rate; clients send jump and control
// messages and receive a state message per tick, as JSON or msgpack.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/knight-runner/internal/config"
	"github.com/vovakirdan/knight-runner/internal/sim"
)

const defaultTickRate = 60

// HandlerConfig configures the WebSocket handler.
type HandlerConfig struct {
	// Config is the game configuration every session runs with.
	Config config.KnightConfig

	// TickRate is the simulation rate in ticks per second.
	TickRate int

	Logger *log.Logger
}

// Handler upgrades requests to WebSocket sessions.
type Handler struct {
	cfg      config.KnightConfig
	tickRate int
	logger   *log.Logger
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex // Guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
}

// NewHandler validates the game config and creates a handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "knight-web",
		})
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		cfg:      cfg.Config,
		tickRate: tickRate,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Handle serves one session. Query parameters:
//
//	codec=msgpack  binary state frames (default json)
//	auto=1         autopilot plays with collisions off and levels looping
//	seed=N         spawner seed (default: current time)
//	level=N        1-based start level
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := sim.Options{Seed: time.Now().UnixNano()}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		opts.Seed = seed
	}
	if v := q.Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil || level < 1 || level > len(h.cfg.Levels) {
			http.Error(w, "invalid level", http.StatusBadRequest)
			return
		}
		opts.StartLevel = level - 1
	}
	auto := q.Get("auto") == "1"
	opts.DisableCollisions = auto
	opts.AutoAdvance = auto
	codec := ParseCodec(q.Get("codec"))

	game, err := sim.New(h.cfg, opts)
	if err != nil {
		// Config was validated in NewHandler
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !h.acquire() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.wg.Done()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Info("session started", "codec", codec, "auto", auto, "seed", opts.Seed, "level", opts.StartLevel+1)
	start := time.Now()

	newSession(conn, game, codec, auto, h.tickRate, logger).run(h.ctx)

	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
}

// acquire registers a session unless the handler is closed.
func (h *Handler) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

// Close refuses new sessions, ends every running one and waits for them to
// finish. It is safe to call more than once.
func (h *Handler) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()
}

// NewMux routes /ws to the handler and answers /health.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.Handle)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Server is an HTTP server for the WebSocket feed.
type Server struct {
	handler *Handler
	server  *http.Server
	logger  *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, cfg HandlerConfig) (*Server, error) {
	h, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		handler: h,
		server: &http.Server{
			Addr:              addr,
			Handler:           NewMux(h),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: h.logger,
	}, nil
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.handler.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
