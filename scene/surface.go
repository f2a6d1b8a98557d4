package scene

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface receives the draw calls of the composite pass.
//
// Coordinates are in pixels with y pointing down. The current transform
// applies to every draw call; Save and Restore push and pop both the
// transform and the alpha.
type Surface interface {
	// Save pushes the current transform and alpha.
	Save()

	// Restore pops the state pushed by the matching Save.
	Restore()

	// Concat post-multiplies the current transform by m.
	Concat(m mgl32.Mat3)

	// Transform returns the current transform.
	Transform() mgl32.Mat3

	// SetAlpha sets the opacity used by subsequent draws.
	SetAlpha(a float32)

	// Alpha returns the current opacity.
	Alpha() float32

	// DrawImage draws img scaled into the rectangle (x, y, w, h).
	// A nil tint draws the image unmodified.
	DrawImage(img image.Image, x, y, w, h float32, tint color.Color)

	// DrawRegion draws the src region of img at (x, y) after applying trans.
	DrawRegion(img image.Image, src image.Rectangle, trans Trans, x, y float32, tint color.Color)

	// FillRect fills the rectangle (x, y, w, h) with c.
	FillRect(x, y, w, h float32, c color.Color)
}

// Disposer is implemented by images and painters owning resources that
// Node.Close releases.
type Disposer interface {
	Dispose()
}

// TransformStack implements the state half of Surface.
// Surface implementations embed it.
type TransformStack struct {
	cur   stackState
	saved []stackState
}

type stackState struct {
	m     mgl32.Mat3
	alpha float32
}

// NewTransformStack returns a stack holding the identity transform and
// full opacity.
func NewTransformStack() *TransformStack {
	return &TransformStack{cur: stackState{m: mgl32.Ident3(), alpha: 1}}
}

// Save pushes the current state.
func (s *TransformStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state. Restore without Save resets the
// stack to identity and full opacity.
func (s *TransformStack) Restore() {
	n := len(s.saved)
	if n == 0 {
		s.cur = stackState{m: mgl32.Ident3(), alpha: 1}
		return
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// Depth returns the number of unmatched Save calls.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}

// Concat post-multiplies the current transform by m.
func (s *TransformStack) Concat(m mgl32.Mat3) {
	s.cur.m = s.cur.m.Mul3(m)
}

// Transform returns the current transform.
func (s *TransformStack) Transform() mgl32.Mat3 {
	return s.cur.m
}

// SetAlpha sets the current opacity, clamped to [0, 1].
func (s *TransformStack) SetAlpha(a float32) {
	s.cur.alpha = mgl32.Clamp(a, 0, 1)
}

// Alpha returns the current opacity.
func (s *TransformStack) Alpha() float32 {
	return s.cur.alpha
}

// Apply maps the point (x, y) through the current transform.
func (s *TransformStack) Apply(x, y float32) (float32, float32) {
	return Apply(s.cur.m, x, y)
}

// Apply maps the point (x, y) through the affine transform m.
func Apply(m mgl32.Mat3, x, y float32) (float32, float32) {
	v := m.Mul3x1(mgl32.Vec3{x, y, 1})
	return v.X(), v.Y()
}

// Affine builds the transform (x, y) -> (a*x + c*y + e, b*x + d*y + f).
func Affine(a, b, c, d, e, f float32) mgl32.Mat3 {
	return mgl32.Mat3{a, b, 0, c, d, 0, e, f, 1}
}

// AboutPoint conjugates m so that it acts around (px, py) instead of the origin.
func AboutPoint(m mgl32.Mat3, px, py float32) mgl32.Mat3 {
	return mgl32.Translate2D(px, py).Mul3(m).Mul3(mgl32.Translate2D(-px, -py))
}
