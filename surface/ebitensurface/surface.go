// Package ebitensurface draws the composite pass onto an ebiten image.
//
// Source images that are not already *ebiten.Image are uploaded once and
// cached by identity. Call Forget when a source image is disposed.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/offscreen/scene"
)

// Surface is a scene.Surface over an *ebiten.Image.
type Surface struct {
	*scene.TransformStack

	dst    *ebiten.Image
	filter ebiten.Filter
	cache  map[image.Image]*ebiten.Image
	pixel  *ebiten.Image
}

// Option configures a Surface.
type Option func(*Surface)

// WithFilter sets the sampling filter for images. The default is
// ebiten.FilterLinear.
func WithFilter(f ebiten.Filter) Option {
	return func(s *Surface) {
		s.filter = f
	}
}

// New returns a surface drawing into dst. dst may be nil and set later
// with SetTarget.
func New(dst *ebiten.Image, opts ...Option) *Surface {
	s := &Surface{
		TransformStack: scene.NewTransformStack(),
		dst:            dst,
		filter:         ebiten.FilterLinear,
		cache:          make(map[image.Image]*ebiten.Image),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTarget replaces the destination image, typically the screen passed
// to ebiten.Game.Draw, and resets the transform stack.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
	s.TransformStack = scene.NewTransformStack()
}

// Target returns the destination image.
func (s *Surface) Target() *ebiten.Image {
	return s.dst
}

// Forget drops the cached upload of img.
func (s *Surface) Forget(img image.Image) {
	if e, ok := s.cache[img]; ok {
		e.Dispose()
		delete(s.cache, img)
	}
}

// Dispose releases every cached upload.
func (s *Surface) Dispose() {
	for img, e := range s.cache {
		e.Dispose()
		delete(s.cache, img)
	}
	if s.pixel != nil {
		s.pixel.Dispose()
		s.pixel = nil
	}
}

// texture returns img as an ebiten image together with the offset that
// maps img coordinates to texture coordinates.
func (s *Surface) texture(img image.Image) (*ebiten.Image, image.Point) {
	if e, ok := img.(*ebiten.Image); ok {
		return e, image.Point{}
	}
	e, ok := s.cache[img]
	if !ok {
		e = ebiten.NewImageFromImage(img)
		s.cache[img] = e
	}
	return e, img.Bounds().Min
}

// DrawImage draws img scaled into (x, y, w, h).
func (s *Surface) DrawImage(img image.Image, x, y, w, h float32, tint color.Color) {
	if s.dst == nil || img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() || w == 0 || h == 0 {
		return
	}
	e, _ := s.texture(img)
	local := mgl32.Translate2D(x, y).Mul3(mgl32.Scale2D(w/float32(b.Dx()), h/float32(b.Dy())))
	s.draw(e, local, tint)
}

// DrawRegion draws the src region of img at (x, y) after trans.
func (s *Surface) DrawRegion(img image.Image, src image.Rectangle, trans scene.Trans, x, y float32, tint color.Color) {
	if s.dst == nil || img == nil {
		return
	}
	sr := src.Intersect(img.Bounds())
	if sr.Empty() {
		return
	}
	e, off := s.texture(img)
	sub := e.SubImage(sr.Sub(off)).(*ebiten.Image)
	local := mgl32.Translate2D(x, y).Mul3(trans.Matrix(float32(sr.Dx()), float32(sr.Dy())))
	s.draw(sub, local, tint)
}

// FillRect fills (x, y, w, h) with c.
func (s *Surface) FillRect(x, y, w, h float32, c color.Color) {
	if s.dst == nil || c == nil || w <= 0 || h <= 0 {
		return
	}
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	local := mgl32.Translate2D(x, y).Mul3(mgl32.Scale2D(w, h))
	s.draw(s.pixel, local, c)
}

func (s *Surface) draw(e *ebiten.Image, local mgl32.Mat3, tint color.Color) {
	alpha := s.Alpha()
	if alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: s.filter}
	op.GeoM = geoM(s.Transform().Mul3(local))
	r, g, b, a := colorScale(tint)
	op.ColorM.Scale(r, g, b, a*float64(alpha))
	s.dst.DrawImage(e, op)
}

// geoM converts an affine mgl32.Mat3 to an ebiten.GeoM.
func geoM(m mgl32.Mat3) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m[0]))
	g.SetElement(0, 1, float64(m[3]))
	g.SetElement(0, 2, float64(m[6]))
	g.SetElement(1, 0, float64(m[1]))
	g.SetElement(1, 1, float64(m[4]))
	g.SetElement(1, 2, float64(m[7]))
	return g
}

// colorScale returns the non-premultiplied channel factors of tint.
// A nil tint is opaque white.
func colorScale(tint color.Color) (r, g, b, a float64) {
	if tint == nil {
		return 1, 1, 1, 1
	}
	c := color.NRGBAModel.Convert(tint).(color.NRGBA)
	return float64(c.R) / 0xff, float64(c.G) / 0xff, float64(c.B) / 0xff, float64(c.A) / 0xff
}

// Ensure Surface implements scene.Surface.
var _ scene.Surface = (*Surface)(nil)
