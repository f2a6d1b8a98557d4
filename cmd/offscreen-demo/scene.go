package main

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/offscreen/scene"
)

var (
	transByName = map[string]scene.Trans{}
	alignByName = map[string]scene.Alignment{}
)

func init() {
	for t := scene.TransNone; t <= scene.TransMirrorRot90; t++ {
		transByName[t.String()] = t
	}
	for a := scene.TopLeft; a <= scene.BottomRight; a++ {
		alignByName[a.String()] = a
	}
}

// BuildScene creates a root container of w×h holding the configured nodes.
func BuildScene(g *scene.Graph, nodes []NodeConfig, w, h float32) (*scene.Node, error) {
	root := g.NewNode()
	root.SetSize(w, h)
	for _, nc := range nodes {
		if err := addNode(g, root, nc, w, h); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func addNode(g *scene.Graph, parent *scene.Node, nc NodeConfig, pw, ph float32) error {
	n := g.NewNode()
	n.SetPosition(nc.X, nc.Y)
	n.SetLayer(nc.Layer)
	n.SetRotation(nc.Rotation)
	n.SetVisible(!nc.Hidden)
	if nc.Scale != 0 {
		n.SetScale(nc.Scale, nc.Scale)
	}
	if nc.Alpha != nil {
		n.SetAlpha(*nc.Alpha)
	}
	if nc.Color != nil && nc.Width > 0 && nc.Height > 0 {
		img := image.NewRGBA(image.Rect(0, 0, nc.Width, nc.Height))
		draw.Draw(img, img.Bounds(), image.NewUniform(nc.Color.ToRGBA()), image.Point{}, draw.Src)
		n.SetImage(img)
	} else {
		n.SetSize(float32(nc.Width), float32(nc.Height))
	}
	if nc.Trans != "" {
		t, ok := transByName[nc.Trans]
		if !ok {
			return fmt.Errorf("node %q: unknown trans %q", nc.Name, nc.Trans)
		}
		n.SetTrans(t)
	}
	if nc.Align != "" {
		a, ok := alignByName[nc.Align]
		if !ok {
			return fmt.Errorf("node %q: unknown align %q", nc.Name, nc.Align)
		}
		n.AlignIn(a, pw, ph)
	}
	if f := nc.Fade; f != nil {
		kind := scene.FadeIn
		if f.Out {
			kind = scene.FadeOut
		}
		n.SetPainter(scene.NewFade(kind, f.Color.ToRGBA(), f.Duration, n.Width(), n.Height()))
	}
	if err := parent.AddChild(n); err != nil {
		return fmt.Errorf("node %q: %w", nc.Name, err)
	}
	for _, c := range nc.Children {
		if err := addNode(g, n, c, n.Width(), n.Height()); err != nil {
			return err
		}
	}
	return nil
}
