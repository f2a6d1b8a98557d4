package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/offscreen/device"
	"github.com/gogpu/offscreen/device/software"
)

// Config describes the rendered scene.
type Config struct {
	Target     TargetConfig  `yaml:"target"`
	Device     DeviceConfig  `yaml:"device"`
	Background Color         `yaml:"background"`
	Frames     int           `yaml:"frames"`
	Tick       time.Duration `yaml:"tick"`
	Nodes      []NodeConfig  `yaml:"nodes"`
}

// TargetConfig describes the render target.
type TargetConfig struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Depth   bool `yaml:"depth"`
	Stencil bool `yaml:"stencil"`
}

// DeviceConfig overrides capabilities of the software device.
type DeviceConfig struct {
	SeparateDepthStencil *bool `yaml:"separate_depth_stencil"`
	FloatColor           *bool `yaml:"float_color"`
	MaxColorAttachments  int   `yaml:"max_color_attachments"`
	MaxTextureSize       int   `yaml:"max_texture_size"`
}

// NodeConfig describes one node; a node with a color and a size is drawn
// as a solid rectangle.
type NodeConfig struct {
	Name     string       `yaml:"name"`
	X        float32      `yaml:"x"`
	Y        float32      `yaml:"y"`
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Color    *Color       `yaml:"color"`
	Layer    int          `yaml:"layer"`
	Alpha    *float32     `yaml:"alpha"`
	Rotation float32      `yaml:"rotation"`
	Scale    float32      `yaml:"scale"`
	Trans    string       `yaml:"trans"`
	Align    string       `yaml:"align"`
	Hidden   bool         `yaml:"hidden"`
	Fade     *FadeConfig  `yaml:"fade"`
	Children []NodeConfig `yaml:"children"`
}

// FadeConfig attaches a fade painter covering the node.
type FadeConfig struct {
	Out      bool          `yaml:"out"`
	Color    Color         `yaml:"color"`
	Duration time.Duration `yaml:"duration"`
}

// Color is a color written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// ToRGBA returns c as a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA(c)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The alpha defaults to ff.
// Colors are given straight and returned premultiplied.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	n := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return Color(color.RGBAModel.Convert(n).(color.RGBA)), nil
}

// DefaultConfig returns the built-in scene.
func DefaultConfig() Config {
	red := Color{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	blue := Color{R: 0x40, G: 0x60, B: 0xe0, A: 0xff}
	yellow := Color{R: 0xf0, G: 0xd0, B: 0x30, A: 0xff}
	return Config{
		Target:     TargetConfig{Width: 256, Height: 256, Depth: true, Stencil: true},
		Background: Color{R: 0x20, G: 0x20, B: 0x28, A: 0xff},
		Frames:     1,
		Tick:       16 * time.Millisecond,
		Nodes: []NodeConfig{
			{Name: "panel", X: 32, Y: 32, Width: 192, Height: 192, Color: &blue, Layer: 0,
				Children: []NodeConfig{
					{Name: "badge", Width: 48, Height: 48, Color: &yellow, Layer: 2, Align: "BottomRight"},
					{Name: "tile", X: 24, Y: 24, Width: 64, Height: 64, Color: &red, Layer: 1, Rotation: 45},
				}},
		},
	}
}

// LoadConfig reads a YAML scene. An empty path returns DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML scene over DefaultConfig's target and timing.
func ParseConfig(data []byte) (Config, error) {
	def := DefaultConfig()
	cfg := Config{Target: def.Target, Background: def.Background, Frames: def.Frames, Tick: def.Tick}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Target.Width <= 0 || cfg.Target.Height <= 0 {
		return Config{}, fmt.Errorf("parse config: invalid target size %dx%d", cfg.Target.Width, cfg.Target.Height)
	}
	if cfg.Frames < 1 {
		cfg.Frames = 1
	}
	return cfg, nil
}

// Capabilities returns the software device capabilities for cfg.
func (d DeviceConfig) Capabilities() device.Capabilities {
	caps := software.DefaultCapabilities()
	if d.SeparateDepthStencil != nil {
		caps.SeparateDepthStencil = *d.SeparateDepthStencil
	}
	if d.FloatColor != nil {
		caps.FloatColorAttachments = *d.FloatColor
	}
	if d.MaxColorAttachments > 0 {
		caps.MaxColorAttachments = d.MaxColorAttachments
	}
	if d.MaxTextureSize > 0 {
		caps.MaxTextureSize = d.MaxTextureSize
	}
	return caps
}
