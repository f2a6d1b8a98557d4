// Package scene implements a retained tree of drawable nodes and the
// per-frame update and composite passes over it.
//
// Nodes live in a [Graph] arena. Parents own their children directly;
// a child refers back to its parent only through an arena handle, so a
// closed parent never keeps its children alive and no reference cycle
// can form.
//
// # Frame
//
// A frame is one Update followed by one Draw of the root:
//
//	root.Update(elapsed)
//	root.Draw(surface, 0, 0)
//
// Update advances animations and hooks of every visible node. Draw issues
// draw calls to a [Surface] in child order: children are sorted by the
// graph comparator (Layer ascending by default) with ties kept in
// insertion order. A node is drawn at its own position plus the absolute
// position of all its ancestors.
//
// # Culling
//
// An invisible node is skipped by both passes, children included. A node
// whose alpha is below 0.01 is still updated but neither it nor its
// children are drawn.
//
// Nodes are NOT safe for concurrent use.
package scene
