package surface

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/offscreen/device/software"
	"github.com/gogpu/offscreen/scene"
)

// ImageSurface is a scene.Surface that renders into an *image.RGBA.
//
// Drawing is clipped to the surface area and positioned relative to its
// top-left corner. Images are composited with draw.Over; the current
// alpha is applied as a uniform source mask.
//
// Example:
//
//	s := surface.NewImageSurface(320, 240)
//	s.Clear(color.Black)
//	root.Draw(s, 0, 0)
//	img := s.Image()
type ImageSurface struct {
	*scene.TransformStack

	target func() (*image.RGBA, image.Rectangle)
	interp draw.Interpolator
}

// NewImageSurface creates a surface over a new transparent image.
// Dimensions below 1 are clamped to 1.
func NewImageSurface(width, height int, opts ...Option) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return NewImageSurfaceFromImage(image.NewRGBA(image.Rect(0, 0, width, height)), opts...)
}

// NewImageSurfaceFromImage creates a surface rendering directly into img.
func NewImageSurfaceFromImage(img *image.RGBA, opts ...Option) *ImageSurface {
	return newSurface(func() (*image.RGBA, image.Rectangle) {
		return img, img.Bounds()
	}, opts)
}

// NewDeviceSurface creates a surface drawing into the color buffer of
// whatever framebuffer is bound on dev, clipped to the current viewport.
// Draw calls are dropped while the bound framebuffer has no color buffer.
func NewDeviceSurface(dev *software.Device, opts ...Option) *ImageSurface {
	return newSurface(dev.DrawTarget, opts)
}

func newSurface(target func() (*image.RGBA, image.Rectangle), opts []Option) *ImageSurface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ImageSurface{
		TransformStack: scene.NewTransformStack(),
		target:         target,
		interp:         o.interp,
	}
}

// Image returns the destination image, or nil when there is none.
func (s *ImageSurface) Image() *image.RGBA {
	img, _ := s.target()
	return img
}

// Bounds returns the drawing area in image coordinates.
func (s *ImageSurface) Bounds() image.Rectangle {
	_, r := s.target()
	return r
}

// Width returns the width of the drawing area.
func (s *ImageSurface) Width() int {
	return s.Bounds().Dx()
}

// Height returns the height of the drawing area.
func (s *ImageSurface) Height() int {
	return s.Bounds().Dy()
}

// Clear replaces every pixel of the drawing area with c, ignoring the
// current transform and alpha.
func (s *ImageSurface) Clear(c color.Color) {
	dst, area := s.target()
	if dst == nil {
		return
	}
	draw.Draw(dst, area, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage draws img scaled into (x, y, w, h).
func (s *ImageSurface) DrawImage(img image.Image, x, y, w, h float32, tint color.Color) {
	if img == nil {
		return
	}
	sr := img.Bounds()
	if sr.Empty() || w == 0 || h == 0 {
		return
	}
	local := mgl32.Translate2D(x, y).
		Mul3(mgl32.Scale2D(w/float32(sr.Dx()), h/float32(sr.Dy()))).
		Mul3(mgl32.Translate2D(-float32(sr.Min.X), -float32(sr.Min.Y)))
	s.blit(img, sr, local, tint)
}

// DrawRegion draws the src region of img at (x, y) after trans.
func (s *ImageSurface) DrawRegion(img image.Image, src image.Rectangle, trans scene.Trans, x, y float32, tint color.Color) {
	if img == nil {
		return
	}
	sr := src.Intersect(img.Bounds())
	if sr.Empty() {
		return
	}
	local := mgl32.Translate2D(x, y).
		Mul3(trans.Matrix(float32(sr.Dx()), float32(sr.Dy()))).
		Mul3(mgl32.Translate2D(-float32(sr.Min.X), -float32(sr.Min.Y)))
	s.blit(img, sr, local, tint)
}

// FillRect fills (x, y, w, h) with c.
func (s *ImageSurface) FillRect(x, y, w, h float32, c color.Color) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	local := mgl32.Translate2D(x, y).Mul3(mgl32.Scale2D(w, h))
	s.transform(image.NewUniform(c), image.Rect(0, 0, 1, 1), local, draw.NearestNeighbor)
}

func (s *ImageSurface) blit(img image.Image, sr image.Rectangle, local mgl32.Mat3, tint color.Color) {
	if tint != nil {
		img = tinted(img, sr, tint)
	}
	s.transform(img, sr, local, s.interp)
}

func (s *ImageSurface) transform(img image.Image, sr image.Rectangle, local mgl32.Mat3, t draw.Transformer) {
	dst, area := s.target()
	if dst == nil || area.Empty() {
		return
	}
	alpha := s.Alpha()
	if alpha <= 0 {
		return
	}
	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(alpha * 0xffff)})}
	}
	clip := dst.SubImage(area).(*image.RGBA)
	m := mgl32.Translate2D(float32(area.Min.X), float32(area.Min.Y)).Mul3(s.Transform()).Mul3(local)
	t.Transform(clip, aff3(m), img, sr, draw.Over, opts)
}

// aff3 converts a column-major affine mgl32.Mat3 to the row-major f64.Aff3
// expected by x/image/draw.
func aff3(m mgl32.Mat3) f64.Aff3 {
	return f64.Aff3{
		float64(m[0]), float64(m[3]), float64(m[6]),
		float64(m[1]), float64(m[4]), float64(m[7]),
	}
}

// tinted returns the sr region of img with every channel multiplied by
// tint. Opaque white returns img unchanged.
func tinted(img image.Image, sr image.Rectangle, tint color.Color) image.Image {
	tr, tg, tb, ta := tint.RGBA()
	if tr == 0xffff && tg == 0xffff && tb == 0xffff && ta == 0xffff {
		return img
	}
	out := image.NewRGBA(sr)
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA64(x, y, color.RGBA64{
				R: uint16(r * tr / 0xffff),
				G: uint16(g * tg / 0xffff),
				B: uint16(b * tb / 0xffff),
				A: uint16(a * ta / 0xffff),
			})
		}
	}
	return out
}

// Ensure ImageSurface implements scene.Surface.
var _ scene.Surface = (*ImageSurface)(nil)
