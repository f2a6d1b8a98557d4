package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/offscreen/scene"
)

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", Color{R: 0xff, A: 0xff}, false},
		{"00ff00ff", Color{G: 0xff, A: 0xff}, false},
		{"#ffffff00", Color{}, false},
		{"#12", Color{}, true},
		{"#gg0000", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
target:
  width: 64
  height: 32
  stencil: true
device:
  separate_depth_stencil: false
background: "#102030"
tick: 20ms
nodes:
  - name: a
    width: 8
    height: 8
    color: "#ff0000"
    alpha: 0.5
    children:
      - name: b
        trans: Rot90
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.Target.Width != 64 || cfg.Target.Height != 32 || !cfg.Target.Stencil || cfg.Target.Depth {
		t.Errorf("Target = %+v, want 64x32 with stencil only", cfg.Target)
	}
	if cfg.Background != (Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("Background = %v", cfg.Background)
	}
	if cfg.Tick != 20*time.Millisecond {
		t.Errorf("Tick = %v, want 20ms", cfg.Tick)
	}
	if cfg.Frames != 1 {
		t.Errorf("Frames = %d, want default 1", cfg.Frames)
	}
	if caps := cfg.Device.Capabilities(); caps.SeparateDepthStencil {
		t.Error("Capabilities().SeparateDepthStencil = true, want false")
	}
	if len(cfg.Nodes) != 1 || len(cfg.Nodes[0].Children) != 1 {
		t.Fatalf("Nodes = %+v, want one node with one child", cfg.Nodes)
	}
	if a := cfg.Nodes[0].Alpha; a == nil || *a != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", a)
	}
	if cfg.Nodes[0].Children[0].Trans != "Rot90" {
		t.Errorf("child Trans = %q, want Rot90", cfg.Nodes[0].Children[0].Trans)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad color", "background: \"#xyz\"\n", "invalid color"},
		{"bad size", "target:\n  width: 0\n  height: 10\n", "invalid target size"},
		{"not yaml", "target: [", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Target.Width != 256 || len(cfg.Nodes) == 0 {
		t.Errorf("LoadConfig(\"\") = %+v, want the built-in scene", cfg.Target)
	}

	cfg, err = LoadConfig("scene.yaml")
	if err != nil {
		t.Fatalf("LoadConfig(scene.yaml) error = %v", err)
	}
	if cfg.Target.Width != 320 || cfg.Frames != 30 {
		t.Errorf("scene.yaml target = %+v frames %d, want 320 wide and 30 frames", cfg.Target, cfg.Frames)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}
}

func TestBuildScene(t *testing.T) {
	red := Color{R: 0xff, A: 0xff}
	nodes := []NodeConfig{
		{Name: "top", Layer: 5, Width: 10, Height: 10, Color: &red},
		{Name: "bottom", Layer: 1, Width: 20, Height: 10, Align: "BottomRight"},
	}
	root, err := BuildScene(scene.NewGraph(), nodes, 100, 50)
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}

	kids := root.Children()
	if len(kids) != 2 || kids[0].Layer() != 1 || kids[1].Layer() != 5 {
		t.Fatalf("children not sorted by layer")
	}
	if kids[0].X() != 80 || kids[0].Y() != 40 {
		t.Errorf("aligned node at (%g,%g), want (80,40)", kids[0].X(), kids[0].Y())
	}
	if kids[1].Image() == nil {
		t.Error("colored node has no image")
	}

	_, err = BuildScene(scene.NewGraph(), []NodeConfig{{Name: "x", Trans: "Sideways"}}, 1, 1)
	if err == nil || !strings.Contains(err.Error(), "unknown trans") {
		t.Errorf("BuildScene() error = %v, want unknown trans", err)
	}
	_, err = BuildScene(scene.NewGraph(), []NodeConfig{{Name: "x", Align: "Nowhere"}}, 1, 1)
	if err == nil || !strings.Contains(err.Error(), "unknown align") {
		t.Errorf("BuildScene() error = %v, want unknown align", err)
	}
}

func TestPipelineRender(t *testing.T) {
	cfg := DefaultConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	defer p.Close()

	img, err := p.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 256, 256) {
		t.Fatalf("Bounds() = %v", img.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"background", 2, 2, cfg.Background},
		{"panel", 35, 35, *cfg.Nodes[0].Color},
		{"tile", 88, 88, *cfg.Nodes[0].Children[1].Color},
		{"badge", 200, 200, *cfg.Nodes[0].Children[0].Color},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); !near(got, tt.want.ToRGBA()) {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPipelinePackedFallback(t *testing.T) {
	separate := false
	cfg := DefaultConfig()
	cfg.Device.SeparateDepthStencil = &separate

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	defer p.Close()

	if !p.Target().UsesPackedFallback() {
		t.Error("UsesPackedFallback() = false, want true")
	}
	if _, err := p.Render(); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := savePNG(path, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("savePNG() error = %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("savePNG() wrote nothing: %v", err)
	}
}
