// Package server hosts the HTTP side of the bot: the webhook endpoint
// that feeds updates to the bot loop, plus health and metrics routes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// QueuePoller is a telebot Poller fed by the webhook endpoint instead
// of long-polling. It is the thread-safe hand-off between the HTTP
// server's goroutines and the bot's update loop.
type QueuePoller struct {
	updates chan tele.Update
}

// NewQueuePoller creates a poller with a buffered update queue.
func NewQueuePoller() *QueuePoller {
	return &QueuePoller{
		updates: make(chan tele.Update, 128),
	}
}

// Poll implements tele.Poller by draining the webhook queue.
func (p *QueuePoller) Poll(b *tele.Bot, dest chan tele.Update, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case u := <-p.updates:
			dest <- u
		}
	}
}

// Enqueue hands an update to the bot loop. It reports false when the
// queue is full; the update is dropped rather than blocking the HTTP
// handler.
func (p *QueuePoller) Enqueue(u tele.Update) bool {
	select {
	case p.updates <- u:
		return true
	default:
		return false
	}
}

// Server is the bot's HTTP front door.
type Server struct {
	httpServer *http.Server
	poller     *QueuePoller
	logger     *zap.Logger
}

// New creates the HTTP server. poller may be nil when the bot
// long-polls; the webhook route is then not registered.
func New(addr string, poller *QueuePoller, logger *zap.Logger) *Server {
	s := &Server{
		poller: poller,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if poller != nil {
		r.Post("/webhook", s.handleWebhook)
	}

	s.httpServer = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Bot is running!"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tele.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Error("Webhook handler error", zap.Error(err))
		http.Error(w, "error", http.StatusBadRequest)
		return
	}

	if !s.poller.Enqueue(update) {
		s.logger.Warn("Update queue full, dropping update", zap.Int("update_id", update.ID))
		http.Error(w, "error", http.StatusServiceUnavailable)
		return
	}

	_, _ = w.Write([]byte("ok"))
}
