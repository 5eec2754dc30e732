// Package viewer connects a stack document to the navigator and renderer.
//
// Navigation never renders by itself; callers move, then call Render.
package viewer

import (
	"fmt"
	"log/slog"

	"github.com/llehouerou/cardview/internal/logging"
	"github.com/llehouerou/cardview/internal/navigator"
	"github.com/llehouerou/cardview/internal/render"
	"github.com/llehouerou/cardview/internal/stack"
)

// Frame is one rendered card and the navigator state it was rendered from.
type Frame struct {
	Buffer *render.PixelBuffer
	State  navigator.State
}

type options struct {
	scale   int
	workers int
	log     *slog.Logger
}

// Option configures a Viewer.
type Option func(*options)

// WithScale sets the render upscale factor.
func WithScale(scale int) Option {
	return func(o *options) { o.scale = scale }
}

// WithWorkers sets the number of render goroutines. Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger for navigation and render events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Viewer shows one card of a document at a time.
type Viewer struct {
	doc      stack.Document
	nav      *navigator.Navigator
	renderer *render.Renderer
	log      *slog.Logger
}

// New creates a viewer on the first card of doc.
func New(doc stack.Document, opts ...Option) (*Viewer, error) {
	o := options{scale: render.DefaultScale}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Logger()
	}

	w, h := doc.Size()
	r, err := render.New(w, h,
		render.WithScale(o.scale),
		render.WithWorkers(o.workers),
		render.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &Viewer{
		doc:      doc,
		nav:      navigator.New(doc.CardCount()),
		renderer: r,
		log:      o.log,
	}, nil
}

// Document returns the viewed document.
func (v *Viewer) Document() stack.Document { return v.doc }

// Navigator returns the viewer's navigator.
func (v *Viewer) Navigator() *navigator.Navigator { return v.nav }

// State returns a snapshot of the navigator.
func (v *Viewer) State() navigator.State { return v.nav.Snapshot() }

// Scale returns the render upscale factor.
func (v *Viewer) Scale() int { return v.renderer.Scale() }

// OutputSize returns the pixel size of rendered frames.
func (v *Viewer) OutputSize() (width, height int) { return v.renderer.OutputSize() }

// First moves to the first card.
func (v *Viewer) First() error { return v.logMove("first", v.nav.MoveToFirst()) }

// Last moves to the last card.
func (v *Viewer) Last() error { return v.logMove("last", v.nav.MoveToLast()) }

// Next moves to the next card, wrapping around.
func (v *Viewer) Next() error { return v.logMove("next", v.nav.MoveToNext()) }

// Previous moves to the previous card, wrapping around.
func (v *Viewer) Previous() error { return v.logMove("previous", v.nav.MoveToPrevious()) }

// JumpTo moves to the card at index.
func (v *Viewer) JumpTo(index int) error { return v.logMove("jump", v.nav.JumpTo(index)) }

// ToggleBackgroundOnly flips between full cards and backgrounds only.
func (v *Viewer) ToggleBackgroundOnly() bool {
	on := v.nav.ToggleBackgroundOnly()
	v.log.Debug("display mode changed", "background_only", on)
	return on
}

func (v *Viewer) logMove(op string, err error) error {
	if err != nil {
		v.log.Debug("navigation rejected", "op", op, "err", err)
		return err
	}
	v.log.Debug("navigated", "op", op, "index", v.nav.Index())
	return nil
}

// Render draws the current card into a new buffer.
// The navigator is read once up front; moves made while rendering only
// affect the next call.
func (v *Viewer) Render() (Frame, error) {
	st := v.nav.Snapshot()
	if st.CardCount == 0 {
		return Frame{State: st}, navigator.ErrInvalidState
	}

	img, err := v.doc.CardImage(st.Index, st.BackgroundOnly)
	if err != nil {
		return Frame{State: st}, fmt.Errorf("card %d image: %w", st.Index, err)
	}

	buf, err := v.renderer.Render(img)
	if err != nil {
		return Frame{State: st}, fmt.Errorf("render card %d: %w", st.Index, err)
	}
	return Frame{Buffer: buf, State: st}, nil
}
