package stage

import (
	"image/color"

	"github.com/gogpu/offscreen/target"
)

// DefaultQueueSize is the lifecycle queue capacity used without WithQueueSize.
const DefaultQueueSize = 64

// Option configures a Stage.
type Option func(*options)

type options struct {
	target    *target.RenderTarget
	queueSize int
	clear     color.Color
}

func defaultOptions() options {
	return options{queueSize: DefaultQueueSize}
}

// WithTarget composites the scene into rt instead of drawing directly.
func WithTarget(rt *target.RenderTarget) Option {
	return func(o *options) {
		o.target = rt
	}
}

// WithQueueSize sets the capacity of the task queue. Values below 1 are
// ignored.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithClearColor clears the render target with c before each composite.
// It has no effect without WithTarget.
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}
