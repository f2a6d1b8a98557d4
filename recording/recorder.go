package recording

import (
	"image"
	"image/color"
	"slices"

	"github.com/gogpu/offscreen/scene"
)

// Recorder is a scene.Surface that stores draw calls instead of drawing.
type Recorder struct {
	*scene.TransformStack
	commands []Command
}

// NewRecorder returns an empty recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{TransformStack: scene.NewTransformStack()}
}

// Commands returns a copy of the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Reset drops all commands and resets the transform stack.
func (r *Recorder) Reset() {
	r.commands = nil
	r.TransformStack = scene.NewTransformStack()
}

func (r *Recorder) record(c Command) {
	c.Transform = r.Transform()
	c.Alpha = r.Alpha()
	c.ScreenX, c.ScreenY = r.Apply(c.X, c.Y)
	r.commands = append(r.commands, c)
}

// DrawImage records a CmdDrawImage.
func (r *Recorder) DrawImage(img image.Image, x, y, w, h float32, tint color.Color) {
	r.record(Command{
		Type:  CmdDrawImage,
		Image: img,
		Src:   img.Bounds(),
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
		Color: tint,
	})
}

// DrawRegion records a CmdDrawRegion.
func (r *Recorder) DrawRegion(img image.Image, src image.Rectangle, trans scene.Trans, x, y float32, tint color.Color) {
	w, h := trans.Size(float32(src.Dx()), float32(src.Dy()))
	r.record(Command{
		Type:  CmdDrawRegion,
		Image: img,
		Src:   src,
		Trans: trans,
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
		Color: tint,
	})
}

// FillRect records a CmdFillRect.
func (r *Recorder) FillRect(x, y, w, h float32, c color.Color) {
	r.record(Command{
		Type:  CmdFillRect,
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
		Color: c,
	})
}

// Playback replays the commands onto s, each inside its own Save and
// Restore with the recorded transform and alpha.
func (r *Recorder) Playback(s scene.Surface) {
	for _, c := range r.commands {
		s.Save()
		s.Concat(c.Transform)
		s.SetAlpha(c.Alpha)
		switch c.Type {
		case CmdDrawImage:
			s.DrawImage(c.Image, c.X, c.Y, c.W, c.H, c.Color)
		case CmdDrawRegion:
			s.DrawRegion(c.Image, c.Src, c.Trans, c.X, c.Y, c.Color)
		case CmdFillRect:
			s.FillRect(c.X, c.Y, c.W, c.H, c.Color)
		}
		s.Restore()
	}
}

// Ensure Recorder implements scene.Surface.
var _ scene.Surface = (*Recorder)(nil)
