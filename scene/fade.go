package scene

import (
	"image/color"
	"time"
)

// FadeKind selects the direction of a Fade.
type FadeKind uint8

const (
	// FadeIn starts opaque and clears, revealing what is below.
	FadeIn FadeKind = iota

	// FadeOut starts clear and covers what is below.
	FadeOut
)

// Fade is a Painter covering a rectangle with a color whose opacity
// changes linearly over a duration.
type Fade struct {
	kind     FadeKind
	color    color.RGBA
	duration time.Duration
	elapsed  time.Duration
	width    float32
	height   float32
	done     bool
}

// NewFade returns a fade of c over a w×h rectangle lasting d.
func NewFade(kind FadeKind, c color.Color, d time.Duration, w, h float32) *Fade {
	return &Fade{
		kind:     kind,
		color:    color.RGBAModel.Convert(c).(color.RGBA),
		duration: d,
		width:    w,
		height:   h,
	}
}

// Kind returns the fade direction.
func (f *Fade) Kind() FadeKind {
	return f.kind
}

// Opacity returns the current overlay opacity in [0, 1].
func (f *Fade) Opacity() float32 {
	p := float32(1)
	if f.duration > 0 {
		p = min(float32(f.elapsed)/float32(f.duration), 1)
	}
	if f.kind == FadeIn {
		return 1 - p
	}
	return p
}

// Completed reports whether the fade has run its full duration.
func (f *Fade) Completed() bool {
	return f.done
}

// Update advances the fade.
func (f *Fade) Update(elapsed time.Duration) {
	if f.done {
		return
	}
	f.elapsed += elapsed
	if f.elapsed >= f.duration {
		f.elapsed = f.duration
		f.done = true
	}
}

// Paint fills the rectangle at (x, y). A completed fade paints nothing.
func (f *Fade) Paint(s Surface, x, y float32) {
	if f.done {
		return
	}
	op := f.Opacity()
	c := color.RGBA{
		R: uint8(float32(f.color.R) * op),
		G: uint8(float32(f.color.G) * op),
		B: uint8(float32(f.color.B) * op),
		A: uint8(float32(f.color.A) * op),
	}
	s.FillRect(x, y, f.width, f.height, c)
}

// Dispose marks the fade completed.
func (f *Fade) Dispose() {
	f.done = true
}
