// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"image"
	"image/color"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// minAlpha is the opacity below which a node is not drawn.
const minAlpha = 0.01

// Painter draws custom content of a node after its frame and before its
// children.
type Painter interface {
	// Update advances the painter with its node.
	Update(elapsed time.Duration)

	// Paint draws at the node's absolute position (x, y).
	Paint(s Surface, x, y float32)
}

// Node is one drawable entry of a scene.
//
// A node draws its frame, which is the current image of its animation or
// else its static image. A node without a frame acts as a container whose
// size is set with SetSize.
type Node struct {
	graph  *Graph
	id     NodeID
	parent NodeID

	children []*Node

	x, y           float32
	rotation       float32
	scaleX, scaleY float32
	pivotX, pivotY float32
	width, height  float32

	visible bool
	alpha   float32
	layer   int
	trans   Trans
	tint    color.Color

	image    image.Image
	anim     *Animation
	painter  Painter
	onUpdate func(n *Node, elapsed time.Duration)

	closed bool
}

// ID returns the arena handle of n.
func (n *Node) ID() NodeID {
	return n.id
}

// Graph returns the graph that created n.
func (n *Node) Graph() *Graph {
	return n.graph
}

// X returns the position relative to the parent.
func (n *Node) X() float32 { return n.x }

// Y returns the position relative to the parent.
func (n *Node) Y() float32 { return n.y }

// SetPosition sets the position relative to the parent.
func (n *Node) SetPosition(x, y float32) {
	n.x, n.y = x, y
}

// Move offsets the position by (dx, dy).
func (n *Node) Move(dx, dy float32) {
	n.x += dx
	n.y += dy
}

// Rotation returns the rotation in degrees.
func (n *Node) Rotation() float32 { return n.rotation }

// SetRotation sets the rotation in degrees, clockwise, around the pivot.
func (n *Node) SetRotation(deg float32) {
	n.rotation = deg
}

// Scale returns the scale factors.
func (n *Node) Scale() (sx, sy float32) {
	return n.scaleX, n.scaleY
}

// SetScale sets the scale factors applied around the node's centre.
func (n *Node) SetScale(sx, sy float32) {
	n.scaleX, n.scaleY = sx, sy
}

// Pivot returns the rotation pivot relative to the node. A coordinate of
// -1 stands for the centre on that axis.
func (n *Node) Pivot() (px, py float32) {
	return n.pivotX, n.pivotY
}

// SetPivot sets the rotation pivot relative to the node. Pass -1 for the
// centre.
func (n *Node) SetPivot(px, py float32) {
	n.pivotX, n.pivotY = px, py
}

// Visible reports whether the node takes part in update and draw.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node together with its children.
func (n *Node) SetVisible(v bool) {
	n.visible = v
}

// Alpha returns the opacity in [0, 1].
func (n *Node) Alpha() float32 { return n.alpha }

// SetAlpha sets the opacity, clamped to [0, 1].
func (n *Node) SetAlpha(a float32) {
	n.alpha = mgl32.Clamp(a, 0, 1)
}

// Layer returns the layering key used by ByLayer.
func (n *Node) Layer() int { return n.layer }

// SetLayer sets the layering key. Siblings are re-sorted on the next
// AddChild of the parent or by SortChildren.
func (n *Node) SetLayer(layer int) {
	n.layer = layer
}

// Trans returns the region transform of the frame.
func (n *Node) Trans() Trans { return n.trans }

// SetTrans sets a mirror or rotation flag for the frame. Frames with a
// flag other than TransNone are drawn with Surface.DrawRegion.
func (n *Node) SetTrans(t Trans) {
	n.trans = t
}

// Tint returns the color multiplied into the frame, or nil.
func (n *Node) Tint() color.Color { return n.tint }

// SetTint sets the color multiplied into the frame. Nil disables tinting.
func (n *Node) SetTint(c color.Color) {
	n.tint = c
}

// Image returns the static image.
func (n *Node) Image() image.Image { return n.image }

// SetImage sets the static image drawn when there is no animation.
func (n *Node) SetImage(img image.Image) {
	n.image = img
}

// Animation returns the animation, or nil.
func (n *Node) Animation() *Animation { return n.anim }

// SetAnimation sets the animation advanced by Update.
func (n *Node) SetAnimation(a *Animation) {
	n.anim = a
}

// SetPainter sets custom content drawn after the frame.
func (n *Node) SetPainter(p Painter) {
	n.painter = p
}

// SetOnUpdate sets a hook called by Update after the animation advanced.
func (n *Node) SetOnUpdate(fn func(n *Node, elapsed time.Duration)) {
	n.onUpdate = fn
}

// SetSize sets the size of a frame-less node.
func (n *Node) SetSize(w, h float32) {
	n.width, n.height = w, h
}

// Frame returns the image drawn for n, or nil.
func (n *Node) Frame() image.Image {
	if n.anim != nil && n.anim.Len() > 0 {
		return n.anim.Current()
	}
	return n.image
}

// baseSize returns the unscaled size of n.
func (n *Node) baseSize(frame image.Image) (float32, float32) {
	if frame == nil {
		return n.width, n.height
	}
	b := frame.Bounds()
	return float32(b.Dx()), float32(b.Dy())
}

// Width returns the scaled width.
func (n *Node) Width() float32 {
	w, _ := n.baseSize(n.Frame())
	return w * n.scaleX
}

// Height returns the scaled height.
func (n *Node) Height() float32 {
	_, h := n.baseSize(n.Frame())
	return h * n.scaleY
}

// ScreenX returns the sum of the x positions of all ancestors.
func (n *Node) ScreenX() float32 {
	var x float32
	for p := n.Parent(); p != nil; p = p.Parent() {
		x += p.x
	}
	return x
}

// ScreenY returns the sum of the y positions of all ancestors.
func (n *Node) ScreenY() float32 {
	var y float32
	for p := n.Parent(); p != nil; p = p.Parent() {
		y += p.y
	}
	return y
}

// Bounds returns the absolute rectangle of the unrotated node.
func (n *Node) Bounds() (x, y, w, h float32) {
	return n.ScreenX() + n.x, n.ScreenY() + n.y, n.Width(), n.Height()
}

// AlignIn positions n inside a parent area of w×h.
func (n *Node) AlignIn(a Alignment, w, h float32) {
	n.x = a.AlignX(w, n.Width())
	n.y = a.AlignY(h, n.Height())
}

// Parent returns the parent, or nil for a detached node.
func (n *Node) Parent() *Node {
	return n.graph.Lookup(n.parent)
}

// Children returns the children in draw order. The slice is a copy.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// IsContainer reports whether n has children.
func (n *Node) IsContainer() bool {
	return len(n.children) > 0
}

// AddChild appends child and re-sorts the children with the graph
// comparator; ties keep insertion order. A child attached elsewhere is
// moved.
func (n *Node) AddChild(child *Node) error {
	if child == nil || child.graph != n.graph || child.closed || n.closed {
		return ErrForeignNode
	}
	for a := n; a != nil; a = a.Parent() {
		if a == child {
			return ErrCycle
		}
	}
	if p := child.Parent(); p != nil {
		p.RemoveChild(child)
	}
	child.parent = n.id
	n.children = append(n.children, child)
	n.SortChildren()
	return nil
}

// RemoveChild detaches child and reports whether it was a child of n.
// The child is not closed.
func (n *Node) RemoveChild(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = NodeID{}
	return true
}

// SortChildren re-sorts the children with the graph comparator.
func (n *Node) SortChildren() {
	slices.SortStableFunc(n.children, n.graph.cmp)
}

// Update advances the animation, the update hook and the painter, then
// updates the children in draw order. Hidden nodes are skipped.
// Children closed or detached by an earlier hook in the same pass are
// skipped; children added during the pass are updated from the next one.
func (n *Node) Update(elapsed time.Duration) {
	if !n.visible {
		return
	}
	if n.anim != nil {
		n.anim.Update(elapsed)
	}
	if n.onUpdate != nil {
		n.onUpdate(n, elapsed)
	}
	if n.painter != nil {
		n.painter.Update(elapsed)
	}
	// Hooks may close, add or move children while the loop runs.
	for _, c := range slices.Clone(n.children) {
		if n.owns(c) {
			c.Update(elapsed)
		}
	}
}

// Draw draws n at (ox+X, oy+Y) and then its children. The caller passes
// the absolute position of n's parent; the root is drawn with the offset
// of the whole scene.
func (n *Node) Draw(s Surface, ox, oy float32) {
	if !n.visible || n.alpha < minAlpha {
		return
	}
	frame := n.Frame()
	if frame == nil && n.painter == nil && len(n.children) == 0 {
		return
	}

	w, h := n.baseSize(frame)
	nx, ny := ox+n.x, oy+n.y

	s.Save()
	defer s.Restore()

	if m, ok := n.localTransform(nx, ny, w, h); ok {
		s.Concat(m)
	}
	s.SetAlpha(n.alpha)

	if frame != nil {
		if n.trans == TransNone {
			s.DrawImage(frame, nx, ny, w, h, n.tint)
		} else {
			s.DrawRegion(frame, frame.Bounds(), n.trans, nx, ny, n.tint)
		}
	}
	if n.painter != nil {
		n.painter.Paint(s, nx, ny)
	}
	for _, c := range slices.Clone(n.children) {
		if n.owns(c) {
			c.Draw(s, nx, ny)
		}
	}
}

// owns reports whether c is still a live child of n.
func (n *Node) owns(c *Node) bool {
	return c != nil && !c.closed && c.parent == n.id
}

// localTransform returns the scale and rotation of n drawn at (nx, ny)
// with size w×h, and false when n is neither scaled nor rotated.
func (n *Node) localTransform(nx, ny, w, h float32) (mgl32.Mat3, bool) {
	scaled := n.scaleX != 1 || n.scaleY != 1
	if n.rotation == 0 && !scaled {
		return mgl32.Mat3{}, false
	}
	m := mgl32.Ident3()
	if scaled {
		m = AboutPoint(mgl32.Scale2D(n.scaleX, n.scaleY), nx+w/2, ny+h/2)
	}
	if n.rotation != 0 {
		px, py := nx+w/2, ny+h/2
		if n.pivotX != -1 {
			px = nx + n.pivotX
		}
		if n.pivotY != -1 {
			py = ny + n.pivotY
		}
		m = m.Mul3(AboutPoint(mgl32.HomogRotate2D(mgl32.DegToRad(n.rotation)), px, py))
	}
	return m, true
}

// Close hides n, releases its image, animation and painter resources,
// detaches it from its parent and frees its arena slot. Children are
// detached but not closed. Calling Close more than once has no effect.
func (n *Node) Close() {
	if n.closed {
		return
	}
	n.closed = true
	n.visible = false
	if d, ok := n.image.(Disposer); ok {
		d.Dispose()
	}
	if n.anim != nil {
		n.anim.Dispose()
	}
	if d, ok := n.painter.(Disposer); ok {
		d.Dispose()
	}
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
	for _, c := range n.children {
		c.parent = NodeID{}
	}
	n.children = nil
	n.graph.release(n.id)
}

// Closed reports whether Close has been called.
func (n *Node) Closed() bool {
	return n.closed
}
