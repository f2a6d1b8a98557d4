package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Trans is a mirror/rotation flag applied to a region before it is drawn.
// Values follow the MIDP sprite transform constants.
type Trans uint8

// Region transforms. Rotations are clockwise with y pointing down.
const (
	TransNone Trans = iota
	TransMirrorRot180
	TransMirror
	TransRot180
	TransMirrorRot270
	TransRot90
	TransRot270
	TransMirrorRot90
)

// String returns the flag name.
func (t Trans) String() string {
	switch t {
	case TransNone:
		return "None"
	case TransMirrorRot180:
		return "MirrorRot180"
	case TransMirror:
		return "Mirror"
	case TransRot180:
		return "Rot180"
	case TransMirrorRot270:
		return "MirrorRot270"
	case TransRot90:
		return "Rot90"
	case TransRot270:
		return "Rot270"
	case TransMirrorRot90:
		return "MirrorRot90"
	default:
		return fmt.Sprintf("Trans(%d)", uint8(t))
	}
}

// Swaps reports whether t exchanges width and height.
func (t Trans) Swaps() bool {
	switch t {
	case TransRot90, TransRot270, TransMirrorRot90, TransMirrorRot270:
		return true
	}
	return false
}

// Size returns the size of a w×h region after t.
func (t Trans) Size(w, h float32) (float32, float32) {
	if t.Swaps() {
		return h, w
	}
	return w, h
}

// Matrix maps region-local coordinates of a w×h region to the local
// coordinates of the transformed region, whose top-left corner is the
// origin.
func (t Trans) Matrix(w, h float32) mgl32.Mat3 {
	switch t {
	case TransMirror:
		return Affine(-1, 0, 0, 1, w, 0)
	case TransMirrorRot180:
		return Affine(1, 0, 0, -1, 0, h)
	case TransRot180:
		return Affine(-1, 0, 0, -1, w, h)
	case TransRot90:
		return Affine(0, 1, -1, 0, h, 0)
	case TransRot270:
		return Affine(0, -1, 1, 0, 0, w)
	case TransMirrorRot90:
		return Affine(0, -1, -1, 0, h, w)
	case TransMirrorRot270:
		return Affine(0, 1, 1, 0, 0, 0)
	default:
		return mgl32.Ident3()
	}
}
