package recording

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/scene"
)

func TestRecorderAbsolutePosition(t *testing.T) {
	rec := NewRecorder()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	rec.Save()
	rec.Concat(mgl32.Translate2D(10, 20))
	rec.SetAlpha(0.5)
	rec.DrawImage(img, 1, 2, 4, 4, nil)
	rec.Restore()
	rec.FillRect(3, 3, 2, 2, color.White)

	cmds := rec.Commands()
	if len(cmds) != 2 {
		t.Fatalf("len(Commands()) = %d, want 2", len(cmds))
	}
	if cmds[0].Type != CmdDrawImage {
		t.Errorf("Commands()[0].Type = %v, want DrawImage", cmds[0].Type)
	}
	if cmds[0].ScreenX != 11 || cmds[0].ScreenY != 22 {
		t.Errorf("DrawImage screen position = (%g,%g), want (11,22)", cmds[0].ScreenX, cmds[0].ScreenY)
	}
	if cmds[0].Alpha != 0.5 {
		t.Errorf("DrawImage alpha = %g, want 0.5", cmds[0].Alpha)
	}
	if cmds[1].ScreenX != 3 || cmds[1].Alpha != 1 {
		t.Errorf("FillRect after Restore = (%g, alpha %g), want (3, alpha 1)", cmds[1].ScreenX, cmds[1].Alpha)
	}
}

func TestRecorderDrawRegionSize(t *testing.T) {
	rec := NewRecorder()
	img := image.NewRGBA(image.Rect(0, 0, 8, 2))

	rec.DrawRegion(img, img.Bounds(), scene.TransRot90, 0, 0, nil)

	c := rec.Commands()[0]
	if c.W != 2 || c.H != 8 {
		t.Errorf("DrawRegion size = %gx%g, want 2x8", c.W, c.H)
	}
	if c.Trans != scene.TransRot90 {
		t.Errorf("Trans = %v, want Rot90", c.Trans)
	}
}

func TestRecorderPlayback(t *testing.T) {
	src := NewRecorder()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Concat(mgl32.Translate2D(5, 5))
	src.DrawImage(img, 0, 0, 2, 2, nil)
	src.FillRect(1, 1, 1, 1, color.Black)

	dst := NewRecorder()
	src.Playback(dst)

	if dst.Len() != src.Len() {
		t.Fatalf("Len() = %d after Playback, want %d", dst.Len(), src.Len())
	}
	for i, c := range dst.Commands() {
		want := src.Commands()[i]
		if c.Type != want.Type || c.ScreenX != want.ScreenX || c.ScreenY != want.ScreenY {
			t.Errorf("command %d = %v, want %v", i, c, want)
		}
	}
	if dst.Depth() != 0 {
		t.Errorf("Depth() = %d after Playback, want 0", dst.Depth())
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	rec.Save()
	rec.FillRect(0, 0, 1, 1, color.White)
	rec.Reset()

	if rec.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", rec.Len())
	}
	if rec.Depth() != 0 {
		t.Errorf("Depth() = %d after Reset, want 0", rec.Depth())
	}
}

func TestCommandsSurviveReset(t *testing.T) {
	rec := NewRecorder()
	rec.FillRect(1, 2, 3, 4, color.White)
	before := rec.Commands()

	rec.Reset()
	rec.FillRect(9, 9, 1, 1, color.Black)
	before[0].X = 100

	if len(before) != 1 || before[0].Y != 2 || before[0].W != 3 {
		t.Errorf("earlier Commands() = %v, overwritten by a later recording", before)
	}
	if got := rec.Commands()[0]; got.X != 9 {
		t.Errorf("Commands()[0].X = %g, want 9", got.X)
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CmdDrawImage, "DrawImage"},
		{CmdDrawRegion, "DrawRegion"},
		{CmdFillRect, "FillRect"},
		{CommandType(99), "CommandType(99)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
