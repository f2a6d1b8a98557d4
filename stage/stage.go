package stage

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/offscreen"
	"github.com/gogpu/offscreen/scene"
	"github.com/gogpu/offscreen/target"
)

var (
	// ErrQueueFull is returned when a task cannot be queued without blocking.
	ErrQueueFull = errors.New("stage: task queue is full")

	// ErrDestroyed is returned for tasks posted after Destroy was queued.
	ErrDestroyed = errors.New("stage: destroyed")
)

// Event is a platform lifecycle notification.
type Event uint8

const (
	// EventPause stops updating and drawing.
	EventPause Event = iota

	// EventResume restarts the scene. Render targets are rebuilt only
	// when EventContextLost was received since they were last built.
	EventResume

	// EventDestroy closes every render target. The stage stays inert.
	EventDestroy

	// EventContextLost reports that the graphics context and every object
	// in it are gone. Targets are rebuilt at once, or at the next
	// EventResume while paused.
	EventContextLost
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	case EventDestroy:
		return "Destroy"
	case EventContextLost:
		return "ContextLost"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

// Stage owns the per-frame update and composite of one scene.
//
// Post, Pause, Resume, ContextLost and Destroy are safe for concurrent
// use. Update, Draw and Frame must be called from the goroutine that owns
// the device.
type Stage struct {
	ctx   *target.Context
	root  *scene.Node
	opts  options
	tasks chan func() error

	// mu orders enqueueing against the destroy flag.
	mu        sync.Mutex
	closing   bool
	paused    atomic.Bool
	destroyed atomic.Bool

	// lost is only touched by tasks on the rendering goroutine.
	lost bool
}

// New creates a stage for root. ctx owns the render targets that Resume
// and Destroy act on.
func New(ctx *target.Context, root *scene.Node, opts ...Option) *Stage {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Stage{
		ctx:   ctx,
		root:  root,
		opts:  o,
		tasks: make(chan func() error, o.queueSize),
	}
}

// Root returns the scene root.
func (s *Stage) Root() *scene.Node {
	return s.root
}

// Target returns the render target set with WithTarget, or nil.
func (s *Stage) Target() *target.RenderTarget {
	return s.opts.target
}

// Paused reports whether a pause has been processed and not yet resumed.
func (s *Stage) Paused() bool {
	return s.paused.Load()
}

// Destroyed reports whether a destroy has been processed.
func (s *Stage) Destroyed() bool {
	return s.destroyed.Load()
}

// Post queues fn to run on the rendering goroutine at the next Update.
// It never blocks.
func (s *Stage) Post(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enqueue(fn)
}

func (s *Stage) enqueue(fn func() error) error {
	if s.closing {
		return ErrDestroyed
	}
	select {
	case s.tasks <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Notify queues the handling of a lifecycle event.
func (s *Stage) Notify(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enqueue(func() error { return s.handle(e) }); err != nil {
		return fmt.Errorf("stage: %s: %w", e, err)
	}
	if e == EventDestroy {
		s.closing = true
	}
	return nil
}

// Pause queues EventPause.
func (s *Stage) Pause() error { return s.Notify(EventPause) }

// Resume queues EventResume.
func (s *Stage) Resume() error { return s.Notify(EventResume) }

// ContextLost queues EventContextLost.
func (s *Stage) ContextLost() error { return s.Notify(EventContextLost) }

// Destroy queues EventDestroy. Later posts fail with ErrDestroyed.
func (s *Stage) Destroy() error { return s.Notify(EventDestroy) }

func (s *Stage) handle(e Event) error {
	offscreen.Logger().Info("stage: lifecycle event", "event", e.String())
	switch e {
	case EventPause:
		s.paused.Store(true)
	case EventResume:
		s.paused.Store(false)
		return s.rebuild()
	case EventContextLost:
		s.lost = true
		if !s.paused.Load() {
			return s.rebuild()
		}
	case EventDestroy:
		s.ctx.Close()
		s.destroyed.Store(true)
	}
	return nil
}

// rebuild invalidates every target once per reported context loss.
// Targets that fail stay registered and are not retried.
func (s *Stage) rebuild() error {
	if !s.lost {
		return nil
	}
	s.lost = false
	if err := s.ctx.InvalidateAll(); err != nil {
		return fmt.Errorf("stage: rebuild after context loss: %w", err)
	}
	return nil
}

// RunTasks runs every queued task without waiting for new ones and
// returns the joined task errors.
func (s *Stage) RunTasks() error {
	var errs []error
	for {
		select {
		case fn := <-s.tasks:
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}

// Active reports whether Update and Draw do any work.
func (s *Stage) Active() bool {
	return !s.paused.Load() && !s.destroyed.Load()
}

// Update runs queued tasks and then advances the scene by elapsed unless
// the stage is paused or destroyed. Task errors are returned after the
// scene was updated.
func (s *Stage) Update(elapsed time.Duration) error {
	err := s.RunTasks()
	if s.Active() && s.root != nil {
		s.root.Update(elapsed)
	}
	return err
}

// Draw composites the scene onto surf. With a render target the scene is
// drawn between Begin and EndViewport(screen), so the screen viewport is
// in place afterwards.
func (s *Stage) Draw(surf scene.Surface, screen image.Rectangle) error {
	if !s.Active() || s.root == nil {
		return nil
	}
	rt := s.opts.target
	if rt == nil {
		s.root.Draw(surf, 0, 0)
		return nil
	}
	if err := rt.Begin(); err != nil {
		return fmt.Errorf("stage: begin: %w", err)
	}
	if s.opts.clear != nil {
		rt.Clear(s.opts.clear, target.DepthStencilNone)
	}
	s.root.Draw(surf, 0, 0)
	rt.EndViewport(screen)
	return nil
}

// Frame runs Update and Draw.
func (s *Stage) Frame(surf scene.Surface, elapsed time.Duration, screen image.Rectangle) error {
	uerr := s.Update(elapsed)
	derr := s.Draw(surf, screen)
	return errors.Join(uerr, derr)
}
