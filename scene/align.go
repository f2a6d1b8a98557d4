package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Alignment is one of nine anchor positions inside an area.
type Alignment uint8

// Anchors, with y pointing down.
const (
	TopLeft Alignment = iota
	Top
	TopRight
	Left
	Middle
	Right
	BottomLeft
	Bottom
	BottomRight
)

var alignFactors = [...]mgl32.Vec2{
	TopLeft:     {0, 0},
	Top:         {0.5, 0},
	TopRight:    {1, 0},
	Left:        {0, 0.5},
	Middle:      {0.5, 0.5},
	Right:       {1, 0.5},
	BottomLeft:  {0, 1},
	Bottom:      {0.5, 1},
	BottomRight: {1, 1},
}

var alignNames = [...]string{
	"TopLeft", "Top", "TopRight",
	"Left", "Middle", "Right",
	"BottomLeft", "Bottom", "BottomRight",
}

// String returns the anchor name.
func (a Alignment) String() string {
	if int(a) < len(alignNames) {
		return alignNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

func (a Alignment) factors() mgl32.Vec2 {
	if int(a) < len(alignFactors) {
		return alignFactors[a]
	}
	return alignFactors[TopLeft]
}

// FromLeft returns the horizontal anchor as a fraction of the width.
func (a Alignment) FromLeft() float32 {
	return a.factors().X()
}

// FromTop returns the vertical anchor as a fraction of the height.
func (a Alignment) FromTop() float32 {
	return a.factors().Y()
}

// AlignX returns the x offset of an item of width inside available.
func (a Alignment) AlignX(available, width float32) float32 {
	return a.FromLeft() * (available - width)
}

// AlignY returns the y offset of an item of height inside available.
func (a Alignment) AlignY(available, height float32) float32 {
	return a.FromTop() * (available - height)
}

// AlignBox returns the top-left corner of a box placed at the anchor of
// the area with the given origin and size.
func (a Alignment) AlignBox(origin, size, box mgl32.Vec2) mgl32.Vec2 {
	return origin.Add(mgl32.Vec2{a.AlignX(size.X(), box.X()), a.AlignY(size.Y(), box.Y())})
}
