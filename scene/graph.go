// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"cmp"
	"errors"
)

var (
	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("scene: node would become its own ancestor")

	// ErrForeignNode is returned for nodes of another graph or closed nodes.
	ErrForeignNode = errors.New("scene: node is not a live node of this graph")
)

// NodeID is a generation-checked handle to a node slot of a Graph.
// The zero NodeID refers to no node.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id refers to no node.
func (id NodeID) IsZero() bool {
	return id.gen == 0
}

// Comparator orders siblings. It returns a negative number when a is
// drawn before b, zero when they tie.
type Comparator func(a, b *Node) int

// ByLayer orders nodes by ascending Layer.
func ByLayer(a, b *Node) int {
	return cmp.Compare(a.layer, b.layer)
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithComparator sets the sibling order. A nil comparator keeps ByLayer.
func WithComparator(c Comparator) GraphOption {
	return func(g *Graph) {
		if c != nil {
			g.cmp = c
		}
	}
}

type slot struct {
	node *Node
	gen  uint32
}

// Graph is the arena owning the node slots of one scene.
type Graph struct {
	slots []slot
	free  []uint32
	cmp   Comparator
}

// NewGraph creates an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{cmp: ByLayer}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewNode creates a detached, visible, opaque node.
func (g *Graph) NewNode() *Node {
	n := &Node{
		graph:   g,
		visible: true,
		alpha:   1,
		scaleX:  1,
		scaleY:  1,
		pivotX:  -1,
		pivotY:  -1,
	}
	var idx uint32
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
	} else {
		idx = uint32(len(g.slots))
		g.slots = append(g.slots, slot{})
	}
	s := &g.slots[idx]
	s.gen++
	s.node = n
	n.id = NodeID{index: idx, gen: s.gen}
	return n
}

// Lookup returns the live node for id, or nil for stale and zero handles.
func (g *Graph) Lookup(id NodeID) *Node {
	if id.IsZero() || int(id.index) >= len(g.slots) {
		return nil
	}
	s := g.slots[id.index]
	if s.gen != id.gen {
		return nil
	}
	return s.node
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.slots) - len(g.free)
}

func (g *Graph) release(id NodeID) {
	if g.Lookup(id) == nil {
		return
	}
	g.slots[id.index].node = nil
	// Bump the generation so outstanding handles go stale.
	g.slots[id.index].gen++
	g.free = append(g.free, id.index)
}
