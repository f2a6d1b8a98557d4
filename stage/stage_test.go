package stage

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/offscreen/device"
	"github.com/gogpu/offscreen/device/software"
	"github.com/gogpu/offscreen/recording"
	"github.com/gogpu/offscreen/scene"
	"github.com/gogpu/offscreen/target"
)

type fixture struct {
	dev     *software.Device
	ctx     *target.Context
	rt      *target.RenderTarget
	root    *scene.Node
	updates int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dev: software.New(software.WithScreenSize(32, 32))}
	f.ctx = target.NewContext(f.dev)
	_, rt, err := target.NewBuilder(f.ctx).
		AddBasicColorAttachment(gputypes.TextureFormatRGBA8Unorm, device.DataTypeUnsignedByte).
		Build(16, 16)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := rt.Allocate(); err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	f.rt = rt

	g := scene.NewGraph()
	f.root = g.NewNode()
	f.root.SetImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	f.root.SetOnUpdate(func(*scene.Node, time.Duration) { f.updates++ })
	return f
}

func TestEventString(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{EventPause, "Pause"},
		{EventResume, "Resume"},
		{EventDestroy, "Destroy"},
		{EventContextLost, "ContextLost"},
		{Event(9), "Event(9)"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPauseResume(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithTarget(f.rt))

	if err := st.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if st.Paused() {
		t.Error("Paused() = true before the task ran")
	}

	rec := recording.NewRecorder()
	if err := st.Frame(rec, time.Millisecond, image.Rect(0, 0, 32, 32)); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !st.Paused() {
		t.Fatal("Paused() = false after Frame")
	}
	if f.updates != 0 || rec.Len() != 0 {
		t.Errorf("paused frame updated %d times and drew %d commands", f.updates, rec.Len())
	}

	f.dev.LoseContext()
	if err := st.ContextLost(); err != nil {
		t.Fatalf("ContextLost() error = %v", err)
	}
	if err := st.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if err := st.Frame(rec, time.Millisecond, image.Rect(0, 0, 32, 32)); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if st.Paused() {
		t.Error("Paused() = true after Resume")
	}
	if f.updates != 1 || rec.Len() != 1 {
		t.Errorf("resumed frame updated %d times and drew %d commands, want 1 and 1", f.updates, rec.Len())
	}
	if got := f.dev.Stats().Live.Framebuffers; got != 1 {
		t.Errorf("live framebuffers after Resume = %d, want 1", got)
	}
}

func TestResumeReportsInvalidationFailure(t *testing.T) {
	dev := software.New()
	ctx := target.NewContext(dev)
	errUpload := errors.New("upload failed")
	fail := false
	factory := func(d device.Device, spec target.AttachmentSpec, w, h int) (device.Texture, error) {
		if fail {
			return 0, errUpload
		}
		return target.DefaultTextureFactory(d, spec, w, h)
	}
	_, rt, err := target.NewBuilder(ctx).
		AddBasicColorAttachment(gputypes.TextureFormatRGBA8Unorm, device.DataTypeUnsignedByte).
		WithTextureFactory(factory).
		Build(4, 4)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := rt.Allocate(); err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	st := New(ctx, nil)
	_ = st.Pause()
	_ = st.ContextLost()
	_ = st.Resume()
	fail = true
	err = st.Update(time.Millisecond)
	if !errors.Is(err, errUpload) {
		t.Errorf("Update() error = %v, want the texture factory error", err)
	}
	if st.Paused() {
		t.Error("Paused() = true after a failed Resume")
	}
	if !ctx.Registry().Contains(rt) {
		t.Error("failed target left the registry")
	}
}

func TestResumeKeepsLiveContext(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithTarget(f.rt))
	before := f.dev.Stats()

	rec := recording.NewRecorder()
	for i := 0; i < 3; i++ {
		_ = st.Pause()
		_ = st.Resume()
		if err := st.Frame(rec, time.Millisecond, image.Rect(0, 0, 32, 32)); err != nil {
			t.Fatalf("Frame() cycle %d error = %v", i, err)
		}
	}
	if got := f.dev.Stats(); got.Live != before.Live || got.Created != before.Created {
		t.Errorf("Stats() after pause cycles = %+v, want %+v", got, before)
	}
	if f.updates != 3 {
		t.Errorf("updates = %d, want 3", f.updates)
	}
}

func TestContextLostWhileRunning(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithTarget(f.rt))
	created := f.dev.Stats().Created

	f.dev.LoseContext()
	_ = st.ContextLost()
	if err := st.Update(time.Millisecond); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := f.dev.Stats().Live.Framebuffers; got != 1 {
		t.Errorf("live framebuffers = %d, want 1", got)
	}
	if got := f.dev.Stats().Created.Framebuffers; got != created.Framebuffers+1 {
		t.Errorf("created framebuffers = %d, want %d", got, created.Framebuffers+1)
	}

	// A later resume without a new loss keeps the rebuilt handles.
	_ = st.Pause()
	_ = st.Resume()
	if err := st.Update(time.Millisecond); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := f.dev.Stats().Created.Framebuffers; got != created.Framebuffers+1 {
		t.Errorf("created framebuffers after Resume = %d, want %d", got, created.Framebuffers+1)
	}
}

func TestDestroy(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithTarget(f.rt))

	if err := st.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if err := st.Post(func() error { return nil }); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Post() after Destroy error = %v, want ErrDestroyed", err)
	}
	if err := st.Pause(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Pause() after Destroy error = %v, want ErrDestroyed", err)
	}

	rec := recording.NewRecorder()
	if err := st.Frame(rec, time.Millisecond, image.Rect(0, 0, 32, 32)); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !st.Destroyed() || st.Active() {
		t.Error("stage still active after Destroy")
	}
	if !f.rt.Closed() || f.ctx.Registry().Len() != 0 {
		t.Error("Destroy did not close the registered targets")
	}
	if f.updates != 0 || rec.Len() != 0 {
		t.Errorf("destroyed frame updated %d times and drew %d commands", f.updates, rec.Len())
	}
}

func TestQueueFull(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithQueueSize(1))

	if err := st.Pause(); err != nil {
		t.Fatalf("first Pause() error = %v", err)
	}
	if err := st.Resume(); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Resume() on a full queue error = %v, want ErrQueueFull", err)
	}
	if err := st.RunTasks(); err != nil {
		t.Fatalf("RunTasks() error = %v", err)
	}
	if err := st.Resume(); err != nil {
		t.Errorf("Resume() after drain error = %v", err)
	}
}

func TestPostConcurrent(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithQueueSize(100))

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ran int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Post(func() error {
				mu.Lock()
				ran++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if err := st.RunTasks(); err != nil {
		t.Fatalf("RunTasks() error = %v", err)
	}
	if ran != 50 {
		t.Errorf("tasks run = %d, want 50", ran)
	}
}

func TestTaskErrorsJoined(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root)
	errA := errors.New("a")
	errB := errors.New("b")
	_ = st.Post(func() error { return errA })
	_ = st.Post(func() error { return nil })
	_ = st.Post(func() error { return errB })

	err := st.Update(time.Millisecond)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Update() error = %v, want both task errors", err)
	}
	if f.updates != 1 {
		t.Errorf("updates = %d, want 1 despite task errors", f.updates)
	}
}

func TestDrawThroughTarget(t *testing.T) {
	f := newFixture(t)
	clearColor := color.RGBA{B: 255, A: 255}
	st := New(f.ctx, f.root, WithTarget(f.rt), WithClearColor(clearColor))
	screen := image.Rect(0, 0, 32, 32)

	rec := recording.NewRecorder()
	if err := st.Draw(rec, screen); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if rec.Len() != 1 {
		t.Errorf("draw commands = %d, want 1", rec.Len())
	}
	if f.rt.IsBound() {
		t.Error("target still bound after Draw")
	}
	if got := f.dev.Viewport(); got != screen {
		t.Errorf("Viewport() = %v, want %v", got, screen)
	}

	out := f.rt.ReadPixels(0, true, true)
	if out == nil {
		t.Fatal("ReadPixels() = nil")
	}
	if got := out.RGBAAt(8, 8); got != clearColor {
		t.Errorf("target pixel = %v, want clear color %v", got, clearColor)
	}
}

func TestDrawClosedTarget(t *testing.T) {
	f := newFixture(t)
	st := New(f.ctx, f.root, WithTarget(f.rt))
	f.rt.Close()

	if err := st.Draw(recording.NewRecorder(), image.Rect(0, 0, 1, 1)); !errors.Is(err, target.ErrClosed) {
		t.Errorf("Draw() error = %v, want ErrClosed", err)
	}
}
