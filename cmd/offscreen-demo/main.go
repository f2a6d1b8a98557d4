// Command offscreen-demo renders a scene into an off-screen render target
// and writes the read-back pixels to a PNG file.
//
// Usage:
//
//	offscreen-demo [-config scene.yaml] [-output out.png] [-window] [-v]
package main

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/offscreen"
	"github.com/gogpu/offscreen/device"
	"github.com/gogpu/offscreen/device/software"
	"github.com/gogpu/offscreen/scene"
	"github.com/gogpu/offscreen/stage"
	"github.com/gogpu/offscreen/stage/ebitengame"
	"github.com/gogpu/offscreen/surface"
	"github.com/gogpu/offscreen/target"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene file (YAML); empty renders the built-in scene")
		output     = flag.String("output", "offscreen.png", "output file")
		window     = flag.Bool("window", false, "show the scene in a window instead of writing a file")
		verbose    = flag.Bool("v", false, "log render target lifecycle")
	)
	flag.Parse()

	if *verbose {
		offscreen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *window {
		if err := runWindow(cfg); err != nil {
			log.Fatalf("Window failed: %v", err)
		}
		return
	}

	p, err := NewPipeline(cfg)
	if err != nil {
		log.Fatalf("Failed to set up render target: %v", err)
	}
	defer p.Close()

	img, err := p.Render()
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d)\n", *output, cfg.Target.Width, cfg.Target.Height)
}

// Pipeline renders a configured scene through a render target on the
// software device.
type Pipeline struct {
	cfg     Config
	dev     *software.Device
	ctx     *target.Context
	rt      *target.RenderTarget
	stage   *stage.Stage
	surface *surface.ImageSurface
}

// NewPipeline allocates the render target and builds the scene.
func NewPipeline(cfg Config) (*Pipeline, error) {
	w, h := cfg.Target.Width, cfg.Target.Height
	dev := software.New(
		software.WithScreenSize(w, h),
		software.WithCapabilities(cfg.Device.Capabilities()),
	)
	ctx := target.NewContext(dev)

	b := target.NewBuilder(ctx).
		AddBasicColorAttachment(gputypes.TextureFormatRGBA8Unorm, device.DataTypeUnsignedByte)
	if cfg.Target.Depth {
		b.AddBasicDepthRenderBuffer()
	}
	if cfg.Target.Stencil {
		b.AddBasicStencilRenderBuffer()
	}
	_, rt, err := b.Build(w, h)
	if err != nil {
		return nil, err
	}
	if err := rt.Allocate(); err != nil {
		return nil, err
	}

	root, err := BuildScene(scene.NewGraph(), cfg.Nodes, float32(w), float32(h))
	if err != nil {
		ctx.Close()
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		dev:     dev,
		ctx:     ctx,
		rt:      rt,
		stage:   stage.New(ctx, root, stage.WithTarget(rt), stage.WithClearColor(cfg.Background.ToRGBA())),
		surface: surface.NewDeviceSurface(dev),
	}, nil
}

// Render runs the configured number of frames and reads the target back
// top-down and opaque.
func (p *Pipeline) Render() (*image.RGBA, error) {
	screen := image.Rect(0, 0, p.cfg.Target.Width, p.cfg.Target.Height)
	for i := 0; i < p.cfg.Frames; i++ {
		if err := p.stage.Frame(p.surface, p.cfg.Tick, screen); err != nil {
			return nil, err
		}
	}
	img := p.rt.ReadPixels(0, true, false)
	if img == nil {
		return nil, target.ErrUnreadable
	}
	return img, nil
}

// Target returns the render target.
func (p *Pipeline) Target() *target.RenderTarget {
	return p.rt
}

// Close releases every render target.
func (p *Pipeline) Close() {
	p.ctx.Close()
}

func runWindow(cfg Config) error {
	ctx := target.NewContext(software.New())
	defer ctx.Close()
	root, err := BuildScene(scene.NewGraph(), cfg.Nodes, float32(cfg.Target.Width), float32(cfg.Target.Height))
	if err != nil {
		return err
	}
	st := stage.New(ctx, root)
	return ebitengame.Run(ebitengame.New(st, cfg.Target.Width, cfg.Target.Height), "offscreen-demo")
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return png.Encode(f, img)
}
