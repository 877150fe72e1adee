package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/weedbox/casinotable"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Submitter accepts inbound requests, *casinotable.Dispatcher is the production one.
type Submitter interface {
	Submit(req casinotable.Request) error
}

type Server struct {
	hub       *Hub
	submit    Submitter
	upgrader  websocket.Upgrader
	logger    *zap.Logger
	staticDir string
}

type Opt func(*Server)

// WithStaticDir serves the browser client from dir when it exists.
func WithStaticDir(dir string) Opt {
	return func(s *Server) {
		s.staticDir = dir
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(hub *Hub, submit Submitter, opts ...Opt) *Server {
	s := &Server{
		hub:    hub,
		submit: submit,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", s.handleWS)

	if s.staticDir != "" {
		if info, err := os.Stat(s.staticDir); err == nil && info.IsDir() {
			mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
		} else {
			s.logger.Warn("static directory not found, not serving client", zap.String("dir", s.staticDir))
		}
	}

	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", zap.Error(err))
		return
	}

	c := &client{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		hub:    s.hub,
		submit: s.submit,
		logger: s.logger,
	}

	s.hub.register(c)
	if err := s.submit.Submit(casinotable.Request{ConnID: c.id, Action: casinotable.RequestAction_Connect}); err != nil {
		s.logger.Warn("submit connect", zap.Error(err))
	}

	go c.writePump()
	go c.readPump()
}

// ListenAndServe serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.hub.CloseAll()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
