package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"kanban-cli/internal/board"
	"kanban-cli/internal/metrics"
	"kanban-cli/internal/model"

	"github.com/rs/zerolog"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr       string
	Controller *board.Controller
	Log        zerolog.Logger

	// KeepAlive is the SSE heartbeat interval. Zero means 25s.
	KeepAlive time.Duration
}

// Server is the browser front-end for one board controller. It is also the
// controller's renderer: every render is recorded and fanned out to the open
// event streams.
type Server struct {
	cfg  ServerConfig
	ctrl *board.Controller
	tmpl *template.Template
	hub  *resourceHub
	log  zerolog.Logger

	mu     sync.RWMutex
	latest viewState
}

type viewState struct {
	board model.Board
	ui    board.UIState
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Controller == nil {
		return nil, errors.New("web: controller is nil")
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 25 * time.Second
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:  cfg,
		ctrl: cfg.Controller,
		tmpl: tmpl,
		hub:  newResourceHub(),
		log:  cfg.Log.With().Str("component", "web").Logger(),
	}
	srv.ctrl.SetRenderer(srv)
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Render implements board.Renderer. It runs under the controller lock, so it
// only records the frame and wakes subscribers.
func (s *Server) Render(b model.Board, ui board.UIState) {
	s.mu.Lock()
	s.latest = viewState{board: b, ui: ui}
	s.mu.Unlock()
	s.hub.broadcast()
}

func (s *Server) snapshot() viewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /static/board.js", s.handleBoardJS)
	mux.HandleFunc("GET /board.json", s.handleBoardJSON)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /columns/{columnId}/form/show", s.handleFormShow)
	mux.HandleFunc("POST /columns/{columnId}/form/hide", s.handleFormHide)
	mux.HandleFunc("POST /columns/{columnId}/cards", s.handleCardCreate)
	mux.HandleFunc("POST /cards/{cardId}/delete", s.handleCardDelete)
	mux.HandleFunc("POST /drag/start", s.handleDragStart)
	mux.HandleFunc("POST /drag/lift", s.handleDragLift)
	mux.HandleFunc("POST /drag/over", s.handleDragOver)
	mux.HandleFunc("POST /drop", s.handleDrop)
	mux.HandleFunc("POST /drag/end", s.handleDragEnd)
	return s.instrument(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleBoardJS(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, "static/board.js", "application/javascript; charset=utf-8")
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, "static/app.css", "text/css; charset=utf-8")
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, name, contentType string) {
	b, err := assetsFS.ReadFile(name)
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v := s.snapshot()
	s.writeHTMLTemplate(w, "page", newPageVM(v.board, v.ui))
}

func (s *Server) handleBoardJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

type resourceHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newResourceHub() *resourceHub {
	return &resourceHub{subs: map[chan struct{}]struct{}{}}
}

func (h *resourceHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

// broadcast never blocks: a subscriber that already has a wake-up pending
// will re-render from the latest state anyway.
func (h *resourceHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *resourceHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handleEvents streams a full #board replacement on every controller render.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ch, cancel := s.hub.subscribe()
	defer cancel()

	sse := datastar.NewSSE(w, r)
	patch := func() {
		v := s.snapshot()
		html, err := s.RenderBoardHTML(v.board, v.ui)
		if err != nil {
			_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
			return
		}
		_ = sse.PatchElements(html, datastar.WithSelector("#board"), datastar.WithMode(datastar.ElementPatchModeOuter))
	}
	patch()

	keepAlive := time.NewTicker(s.cfg.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			patch()
		}
	}
}
