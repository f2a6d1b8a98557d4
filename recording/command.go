package recording

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/scene"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdDrawImage  CommandType = iota // Draw a scaled image
	CmdDrawRegion                    // Draw a transformed image region
	CmdFillRect                      // Fill a rectangle
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdDrawImage:  "DrawImage",
	CmdDrawRegion: "DrawRegion",
	CmdFillRect:   "FillRect",
}

// String returns the command type name.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return fmt.Sprintf("CommandType(%d)", uint8(t))
}

// Command is one recorded draw call.
type Command struct {
	Type CommandType

	// Image and Src are set for image commands. Src is the whole image
	// bounds for CmdDrawImage.
	Image image.Image
	Src   image.Rectangle

	// Trans is the region transform of CmdDrawRegion.
	Trans scene.Trans

	// X, Y, W and H are the local rectangle passed to the call. For
	// CmdDrawRegion, W and H are the size after Trans.
	X, Y, W, H float32

	// ScreenX and ScreenY are the local top-left corner mapped through
	// Transform.
	ScreenX, ScreenY float32

	// Transform and Alpha are the surface state at the time of the call.
	Transform mgl32.Mat3
	Alpha     float32

	// Color is the tint of image commands or the fill of CmdFillRect.
	Color color.Color
}

// String returns a short description of the command.
func (c Command) String() string {
	return fmt.Sprintf("%s at (%g,%g) size %gx%g alpha %g", c.Type, c.ScreenX, c.ScreenY, c.W, c.H, c.Alpha)
}
