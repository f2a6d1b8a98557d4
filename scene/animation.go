package scene

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrInvalidGrid is returned by SplitFrames for a grid that does not fit
// the image.
var ErrInvalidGrid = errors.New("scene: invalid frame grid")

// Frame is one image of an animation shown for Duration.
type Frame struct {
	Image    image.Image
	Duration time.Duration
}

// Animation cycles through frames as time advances.
//
// A new animation is running and loops. A non-looping animation stops on
// its last frame. Frames with a zero duration are held until the index is
// changed explicitly.
type Animation struct {
	frames  []Frame
	index   int
	elapsed time.Duration
	running bool
	loop    bool
}

// NewAnimation returns a running, looping animation of frames.
func NewAnimation(frames ...Frame) *Animation {
	return &Animation{frames: frames, running: true, loop: true}
}

// AddFrame appends a frame shown for d.
func (a *Animation) AddFrame(img image.Image, d time.Duration) {
	a.frames = append(a.frames, Frame{Image: img, Duration: d})
}

// Len returns the number of frames.
func (a *Animation) Len() int {
	return len(a.frames)
}

// Index returns the current frame index.
func (a *Animation) Index() int {
	return a.index
}

// SetIndex jumps to frame i. Out of range indices are ignored.
func (a *Animation) SetIndex(i int) {
	if i < 0 || i >= len(a.frames) {
		return
	}
	a.index = i
	a.elapsed = 0
}

// Current returns the image of the current frame, or nil when empty.
func (a *Animation) Current() image.Image {
	if a.index >= len(a.frames) {
		return nil
	}
	return a.frames[a.index].Image
}

// Running reports whether the animation advances on Update.
func (a *Animation) Running() bool {
	return a.running
}

// Start resumes advancing.
func (a *Animation) Start() {
	a.running = true
}

// Stop freezes the current frame.
func (a *Animation) Stop() {
	a.running = false
}

// Loop reports whether the animation wraps around.
func (a *Animation) Loop() bool {
	return a.loop
}

// SetLoop sets whether the animation wraps around after its last frame.
func (a *Animation) SetLoop(loop bool) {
	a.loop = loop
}

// Reset returns to the first frame and starts the animation.
func (a *Animation) Reset() {
	a.index = 0
	a.elapsed = 0
	a.running = true
}

// Update advances the animation by elapsed.
func (a *Animation) Update(elapsed time.Duration) {
	if !a.running || len(a.frames) < 2 {
		return
	}
	a.elapsed += elapsed
	for {
		d := a.frames[a.index].Duration
		if d <= 0 || a.elapsed < d {
			return
		}
		a.elapsed -= d
		if a.index+1 < len(a.frames) {
			a.index++
			continue
		}
		if !a.loop {
			a.elapsed = 0
			a.running = false
			return
		}
		a.index = 0
	}
}

// Dispose releases every frame image that implements Disposer and
// empties the animation.
func (a *Animation) Dispose() {
	for _, f := range a.frames {
		if d, ok := f.Image.(Disposer); ok {
			d.Dispose()
		}
	}
	a.frames = nil
	a.index = 0
	a.elapsed = 0
	a.running = false
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SplitFrames cuts a sprite sheet into cols×rows equally sized frames,
// row by row, each shown for d.
func SplitFrames(img image.Image, cols, rows int, d time.Duration) (*Animation, error) {
	sheet, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no SubImage", ErrInvalidGrid, img)
	}
	b := img.Bounds()
	if cols <= 0 || rows <= 0 || b.Dx() < cols || b.Dy() < rows {
		return nil, fmt.Errorf("%w: %dx%d cells on %dx%d image", ErrInvalidGrid, cols, rows, b.Dx(), b.Dy())
	}
	w, h := b.Dx()/cols, b.Dy()/rows
	frames := make([]Frame, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := image.Rect(c*w, r*h, (c+1)*w, (r+1)*h).Add(b.Min)
			frames = append(frames, Frame{Image: sheet.SubImage(cell), Duration: d})
		}
	}
	return NewAnimation(frames...), nil
}
