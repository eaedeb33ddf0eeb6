// Package board owns the live kanban board: it applies commands, runs the
// drag/drop state machine and triggers persistence and re-rendering after every
// change.
package board

import (
	"context"
	"sync"

	"kanban-cli/internal/metrics"
	"kanban-cli/internal/model"

	"github.com/rs/zerolog"
)

// Persister receives a snapshot after every mutation. Implementations handle
// their own failures; the controller never sees an error.
type Persister interface {
	Save(ctx context.Context, b model.Board)
}

// Renderer rebuilds the whole view from a snapshot. It must not call back into
// the controller.
type Renderer interface {
	Render(b model.Board, ui UIState)
}

type RendererFunc func(b model.Board, ui UIState)

func (f RendererFunc) Render(b model.Board, ui UIState) { f(b, ui) }

// UIState is presentation state that is never persisted.
type UIState struct {
	OpenForms map[string]bool
	Drafts    map[string]string
	Drag      *Session
}

func (u UIState) FormOpen(columnID string) bool { return u.OpenForms[columnID] }

func (u UIState) clone() UIState {
	out := UIState{
		OpenForms: make(map[string]bool, len(u.OpenForms)),
		Drafts:    make(map[string]string, len(u.Drafts)),
	}
	for k, v := range u.OpenForms {
		out.OpenForms[k] = v
	}
	for k, v := range u.Drafts {
		out.Drafts[k] = v
	}
	if u.Drag != nil {
		s := *u.Drag
		out.Drag = &s
	}
	return out
}

type Options struct {
	Persister Persister
	Renderer  Renderer
	IDs       IDSource
	Log       zerolog.Logger
}

// Controller exclusively owns the live board. Every exported method takes the
// controller lock and runs to completion, so handlers on different goroutines
// see the same ordering a single event loop would give them.
type Controller struct {
	mu sync.Mutex

	board model.Board
	ui    UIState

	persist  Persister
	renderer Renderer
	ids      IDSource
	log      zerolog.Logger
}

func New(initial model.Board, opt Options) *Controller {
	c := &Controller{
		board:    initial.Clone(),
		ui:       UIState{OpenForms: map[string]bool{}, Drafts: map[string]string{}},
		persist:  opt.Persister,
		renderer: opt.Renderer,
		ids:      opt.IDs,
		log:      opt.Log.With().Str("component", "board").Logger(),
	}
	if c.ids == nil {
		c.ids = NewTimestampIDs()
	}
	return c
}

// SetRenderer swaps the view. Used by front-ends that are constructed after the
// controller. The new renderer immediately receives a full frame.
func (c *Controller) SetRenderer(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
	c.render()
}

// Refresh re-renders without changing anything.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render()
}

func (c *Controller) Snapshot() model.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Clone()
}

func (c *Controller) UI() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ui.clone()
}

// Session returns the current drag session, if any.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ui.Drag == nil {
		return Session{}, false
	}
	return *c.ui.Drag, true
}

// commit installs the next board version, persists it in full and re-renders.
func (c *Controller) commit(ctx context.Context, next model.Board, op string) {
	c.board = next
	metrics.Mutation(op)
	if c.persist != nil {
		c.persist.Save(ctx, next.Clone())
	}
	c.render()
}

func (c *Controller) noop(op string, ev *zerolog.Event) {
	metrics.Noop(op)
	ev.Str("op", op).Msg("ignored")
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.board.Clone(), c.ui.clone())
}
