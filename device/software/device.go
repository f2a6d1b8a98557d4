// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements device.Device on the CPU.
//
// Framebuffers, renderbuffers and textures live in handle tables; color
// storage is an *image.RGBA per texture plus one for the system
// framebuffer. Completeness follows the OpenGL ES rules that matter to
// render targets, including devices that reject separate depth and stencil
// renderbuffers. Every create and delete is counted, which makes the device
// usable as a leak-checking fake in tests.
package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/offscreen/device"
)

var (
	// ErrOutOfHandles is returned when the handle limit is reached.
	ErrOutOfHandles = errors.New("software: out of handles")

	// ErrInvalidSize is returned for texture sizes outside device limits.
	ErrInvalidSize = errors.New("software: invalid texture size")

	// ErrNoColorBuffer is returned by ReadPixels when nothing is readable.
	ErrNoColorBuffer = errors.New("software: framebuffer has no color buffer")
)

// statusUndefined is reported for the null framebuffer.
const statusUndefined device.Status = 0x8219

// Counts holds per-kind object counters.
type Counts struct {
	Framebuffers  int
	Renderbuffers int
	Textures      int
}

// Total returns the sum over all object kinds.
func (c Counts) Total() int {
	return c.Framebuffers + c.Renderbuffers + c.Textures
}

// Stats reports object counters of a Device.
type Stats struct {
	// Live is the number of currently allocated objects.
	Live Counts

	// Created and Deleted count successful create and delete calls.
	Created Counts
	Deleted Counts
}

type attachment struct {
	tex device.Texture
	rb  device.Renderbuffer
}

type framebuffer struct {
	attachments map[device.AttachmentPoint]attachment
}

type renderbuffer struct {
	format gputypes.TextureFormat
	width  int
	height int
	stored bool
}

type texture struct {
	desc device.TextureDescriptor
	img  *image.RGBA
}

// Device is a CPU-backed device.Device.
//
// Device is NOT safe for concurrent use.
type Device struct {
	opts options

	next          uint32
	framebuffers  map[device.Framebuffer]*framebuffer
	renderbuffers map[device.Renderbuffer]*renderbuffer
	textures      map[device.Texture]*texture
	screen        *image.RGBA

	boundFB  device.Framebuffer
	boundRB  device.Renderbuffer
	viewport image.Rectangle
	stats    Stats
}

// New creates a software device with a system framebuffer of the
// configured screen size.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		opts:   o,
		screen: image.NewRGBA(image.Rect(0, 0, o.screenWidth, o.screenHeight)),
	}
	d.reset()
	return d
}

func (d *Device) reset() {
	d.next = uint32(d.opts.defaultFB)
	d.framebuffers = make(map[device.Framebuffer]*framebuffer)
	d.renderbuffers = make(map[device.Renderbuffer]*renderbuffer)
	d.textures = make(map[device.Texture]*texture)
	d.boundFB = d.opts.defaultFB
	d.boundRB = 0
	d.viewport = image.Rect(0, 0, d.opts.screenWidth, d.opts.screenHeight)
	d.stats.Live = Counts{}
}

// LoseContext discards every object as a real GPU does when its context
// is destroyed. Handles held by callers become stale; Deleted counters are
// not advanced.
func (d *Device) LoseContext() {
	d.reset()
}

// Stats returns object counters.
func (d *Device) Stats() Stats {
	return d.stats
}

// Screen returns the color buffer of the system framebuffer.
func (d *Device) Screen() *image.RGBA {
	return d.screen
}

// TextureImage returns the color storage of tex, or nil.
func (d *Device) TextureImage(tex device.Texture) *image.RGBA {
	if t, ok := d.textures[tex]; ok {
		return t.img
	}
	return nil
}

// DrawTarget returns the color buffer that drawing currently lands in
// together with the viewport converted to top-down image coordinates.
// The image is nil when the bound framebuffer has no color buffer.
func (d *Device) DrawTarget() (*image.RGBA, image.Rectangle) {
	img := d.colorImage(d.boundFB, 0)
	if img == nil {
		return nil, image.Rectangle{}
	}
	h := img.Bounds().Dy()
	v := d.viewport
	return img, image.Rect(v.Min.X, h-v.Max.Y, v.Max.X, h-v.Min.Y)
}

func (d *Device) allocID() (uint32, bool) {
	if d.opts.handleLimit > 0 && d.stats.Live.Total() >= d.opts.handleLimit {
		return 0, false
	}
	d.next++
	return d.next, true
}

// Capabilities returns the configured capabilities.
func (d *Device) Capabilities() device.Capabilities {
	return d.opts.caps
}

// CreateFramebuffer allocates a framebuffer, or returns 0 at the handle limit.
func (d *Device) CreateFramebuffer() device.Framebuffer {
	id, ok := d.allocID()
	if !ok {
		return 0
	}
	fb := device.Framebuffer(id)
	d.framebuffers[fb] = &framebuffer{attachments: make(map[device.AttachmentPoint]attachment)}
	d.stats.Live.Framebuffers++
	d.stats.Created.Framebuffers++
	return fb
}

// DeleteFramebuffer releases fb. Deleting the bound framebuffer binds the
// system framebuffer.
func (d *Device) DeleteFramebuffer(fb device.Framebuffer) {
	if _, ok := d.framebuffers[fb]; !ok {
		return
	}
	delete(d.framebuffers, fb)
	d.stats.Live.Framebuffers--
	d.stats.Deleted.Framebuffers++
	if d.boundFB == fb {
		d.boundFB = d.opts.defaultFB
	}
}

// BindFramebuffer binds fb.
func (d *Device) BindFramebuffer(fb device.Framebuffer) {
	d.boundFB = fb
}

// BoundFramebuffer returns the bound framebuffer.
func (d *Device) BoundFramebuffer() device.Framebuffer {
	return d.boundFB
}

// CreateRenderbuffer allocates a renderbuffer, or returns 0 at the handle limit.
func (d *Device) CreateRenderbuffer() device.Renderbuffer {
	id, ok := d.allocID()
	if !ok {
		return 0
	}
	rb := device.Renderbuffer(id)
	d.renderbuffers[rb] = &renderbuffer{}
	d.stats.Live.Renderbuffers++
	d.stats.Created.Renderbuffers++
	return rb
}

// DeleteRenderbuffer releases rb and detaches it from every framebuffer.
func (d *Device) DeleteRenderbuffer(rb device.Renderbuffer) {
	if _, ok := d.renderbuffers[rb]; !ok {
		return
	}
	delete(d.renderbuffers, rb)
	d.stats.Live.Renderbuffers--
	d.stats.Deleted.Renderbuffers++
	if d.boundRB == rb {
		d.boundRB = 0
	}
	for _, fb := range d.framebuffers {
		for p, a := range fb.attachments {
			if a.rb == rb {
				delete(fb.attachments, p)
			}
		}
	}
}

// BindRenderbuffer binds rb.
func (d *Device) BindRenderbuffer(rb device.Renderbuffer) {
	d.boundRB = rb
}

// RenderbufferStorage allocates storage for the bound renderbuffer.
// Sizes beyond MaxTextureSize leave the renderbuffer without storage.
func (d *Device) RenderbufferStorage(format gputypes.TextureFormat, width, height int) {
	rb, ok := d.renderbuffers[d.boundRB]
	if !ok {
		return
	}
	rb.format = format
	rb.width = width
	rb.height = height
	rb.stored = d.validSize(width, height)
}

func (d *Device) validSize(width, height int) bool {
	limit := d.opts.caps.MaxTextureSize
	if width <= 0 || height <= 0 {
		return false
	}
	return limit <= 0 || (width <= limit && height <= limit)
}

// CreateTexture allocates a texture with RGBA8 CPU storage.
func (d *Device) CreateTexture(desc device.TextureDescriptor) (device.Texture, error) {
	if !d.validSize(desc.Width, desc.Height) {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, desc.Width, desc.Height)
	}
	id, ok := d.allocID()
	if !ok {
		return 0, ErrOutOfHandles
	}
	tex := device.Texture(id)
	d.textures[tex] = &texture{
		desc: desc,
		img:  image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height)),
	}
	d.stats.Live.Textures++
	d.stats.Created.Textures++
	return tex, nil
}

// DeleteTexture releases tex and detaches it from every framebuffer.
func (d *Device) DeleteTexture(tex device.Texture) {
	if _, ok := d.textures[tex]; !ok {
		return
	}
	delete(d.textures, tex)
	d.stats.Live.Textures--
	d.stats.Deleted.Textures++
	for _, fb := range d.framebuffers {
		for p, a := range fb.attachments {
			if a.tex == tex {
				delete(fb.attachments, p)
			}
		}
	}
}

// AttachTexture attaches tex to the bound framebuffer.
func (d *Device) AttachTexture(point device.AttachmentPoint, tex device.Texture) {
	fb, ok := d.framebuffers[d.boundFB]
	if !ok {
		return
	}
	if tex == 0 {
		delete(fb.attachments, point)
		return
	}
	fb.attachments[point] = attachment{tex: tex}
}

// AttachRenderbuffer attaches rb to the bound framebuffer.
func (d *Device) AttachRenderbuffer(point device.AttachmentPoint, rb device.Renderbuffer) {
	fb, ok := d.framebuffers[d.boundFB]
	if !ok {
		return
	}
	if rb == 0 {
		delete(fb.attachments, point)
		return
	}
	fb.attachments[point] = attachment{rb: rb}
}

// SetViewport sets the viewport.
func (d *Device) SetViewport(r image.Rectangle) {
	d.viewport = r
}

// Viewport returns the viewport.
func (d *Device) Viewport() image.Rectangle {
	return d.viewport
}

// Clear clears the color buffers of the bound framebuffer when mask
// contains device.ClearColor. Depth and stencil have no CPU storage.
func (d *Device) Clear(c color.Color, mask device.ClearMask) {
	if mask&device.ClearColor == 0 {
		return
	}
	src := image.NewUniform(c)
	for _, img := range d.colorImages(d.boundFB) {
		draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
	}
}

// ReadPixels copies r from color attachment 0 of the bound framebuffer.
// r is in bottom-up framebuffer coordinates and rows are written bottom-up.
func (d *Device) ReadPixels(dst []byte, r image.Rectangle) error {
	img := d.colorImage(d.boundFB, 0)
	if img == nil {
		return ErrNoColorBuffer
	}
	b := img.Bounds()
	if r.Empty() || !r.In(b) {
		return fmt.Errorf("software: read rectangle %v outside %v", r, b)
	}
	w, h := r.Dx(), r.Dy()
	if len(dst) < w*h*4 {
		return fmt.Errorf("software: read buffer too small: %d < %d", len(dst), w*h*4)
	}
	for i := 0; i < h; i++ {
		y := b.Dy() - 1 - (r.Min.Y + i)
		off := img.PixOffset(r.Min.X, y)
		copy(dst[i*w*4:(i+1)*w*4], img.Pix[off:off+w*4])
	}
	return nil
}

func (d *Device) colorImage(fb device.Framebuffer, slot int) *image.RGBA {
	if fb == d.opts.defaultFB {
		if slot == 0 {
			return d.screen
		}
		return nil
	}
	f, ok := d.framebuffers[fb]
	if !ok {
		return nil
	}
	a, ok := f.attachments[device.ColorAttachment(slot)]
	if !ok || a.tex == 0 {
		return nil
	}
	if t, ok := d.textures[a.tex]; ok {
		return t.img
	}
	return nil
}

func (d *Device) colorImages(fb device.Framebuffer) []*image.RGBA {
	if fb == d.opts.defaultFB {
		return []*image.RGBA{d.screen}
	}
	f, ok := d.framebuffers[fb]
	if !ok {
		return nil
	}
	var imgs []*image.RGBA
	for p, a := range f.attachments {
		if !p.IsColor() {
			continue
		}
		if t, ok := d.textures[a.tex]; ok {
			imgs = append(imgs, t.img)
		}
	}
	return imgs
}

// Ensure Device implements device.Device.
var _ device.Device = (*Device)(nil)
