// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gldevice adapts a golang.org/x/mobile/gl context to device.Device.
//
// The host platform owns the context and its worker; this package only
// issues calls on it and must be used from the goroutine that drives it.
package gldevice

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/offscreen/device"
)

// Device issues framebuffer operations on a GL ES context.
type Device struct {
	gl       gl.Context
	caps     device.Capabilities
	viewport image.Rectangle
}

// New wraps ctx. Limits are queried once; SeparateDepthStencil is reported
// as supported and left for completeness checks to refute.
func New(ctx gl.Context) *Device {
	d := &Device{gl: ctx}
	d.caps = device.Capabilities{
		MaxTextureSize:        ctx.GetInteger(gl.MAX_TEXTURE_SIZE),
		MaxColorAttachments:   1,
		SeparateDepthStencil:  true,
		FloatColorAttachments: false,
		VendorName:            ctx.GetString(gl.VENDOR),
		DeviceName:            ctx.GetString(gl.RENDERER),
	}
	if n := ctx.GetInteger(glMaxColorAttachment); n > 1 && ctx.GetError() == gl.NO_ERROR {
		d.caps.MaxColorAttachments = n
	}
	// Drain the error flag of the probe on ES 2.0 contexts.
	_ = ctx.GetError()

	vp := make([]int32, 4)
	ctx.GetIntegerv(vp, gl.VIEWPORT)
	d.viewport = image.Rect(int(vp[0]), int(vp[1]), int(vp[0]+vp[2]), int(vp[1]+vp[3]))
	return d
}

// Capabilities returns the limits queried at creation.
func (d *Device) Capabilities() device.Capabilities {
	return d.caps
}

// CreateFramebuffer calls glGenFramebuffers.
func (d *Device) CreateFramebuffer() device.Framebuffer {
	return device.Framebuffer(d.gl.CreateFramebuffer().Value)
}

// DeleteFramebuffer calls glDeleteFramebuffers.
func (d *Device) DeleteFramebuffer(fb device.Framebuffer) {
	if fb == 0 {
		return
	}
	d.gl.DeleteFramebuffer(gl.Framebuffer{Value: uint32(fb)})
}

// BindFramebuffer binds fb to GL_FRAMEBUFFER.
func (d *Device) BindFramebuffer(fb device.Framebuffer) {
	d.gl.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{Value: uint32(fb)})
}

// BoundFramebuffer queries GL_FRAMEBUFFER_BINDING.
func (d *Device) BoundFramebuffer() device.Framebuffer {
	return device.Framebuffer(d.gl.GetInteger(gl.FRAMEBUFFER_BINDING))
}

// CreateRenderbuffer calls glGenRenderbuffers.
func (d *Device) CreateRenderbuffer() device.Renderbuffer {
	return device.Renderbuffer(d.gl.CreateRenderbuffer().Value)
}

// DeleteRenderbuffer calls glDeleteRenderbuffers.
func (d *Device) DeleteRenderbuffer(rb device.Renderbuffer) {
	if rb == 0 {
		return
	}
	d.gl.DeleteRenderbuffer(gl.Renderbuffer{Value: uint32(rb)})
}

// BindRenderbuffer binds rb to GL_RENDERBUFFER.
func (d *Device) BindRenderbuffer(rb device.Renderbuffer) {
	d.gl.BindRenderbuffer(gl.RENDERBUFFER, gl.Renderbuffer{Value: uint32(rb)})
}

// RenderbufferStorage allocates storage for the bound renderbuffer.
// Unknown formats leave the renderbuffer without storage, which the
// completeness check reports as an incomplete attachment.
func (d *Device) RenderbufferStorage(format gputypes.TextureFormat, width, height int) {
	f, ok := internalFormat(format, false)
	if !ok {
		return
	}
	d.gl.RenderbufferStorage(gl.RENDERBUFFER, f, width, height)
}

// CreateTexture creates a 2D texture with undefined contents and
// clamp-to-edge, nearest sampling.
func (d *Device) CreateTexture(desc device.TextureDescriptor) (device.Texture, error) {
	f, ok := internalFormat(desc.Format, true)
	if !ok {
		return 0, fmt.Errorf("gldevice: unsupported texture format %v", desc.Format)
	}
	t := d.gl.CreateTexture()
	if t.Value == 0 {
		return 0, fmt.Errorf("gldevice: glGenTextures returned 0")
	}
	d.gl.BindTexture(gl.TEXTURE_2D, t)
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	d.gl.TexImage2D(gl.TEXTURE_2D, 0, int(f), desc.Width, desc.Height,
		pixelFormat(desc.PixelFormat), dataType(desc.DataType), nil)
	d.gl.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	if e := d.gl.GetError(); e != gl.NO_ERROR {
		d.gl.DeleteTexture(t)
		return 0, fmt.Errorf("gldevice: glTexImage2D failed: 0x%X", uint32(e))
	}
	return device.Texture(t.Value), nil
}

// DeleteTexture calls glDeleteTextures.
func (d *Device) DeleteTexture(tex device.Texture) {
	if tex == 0 {
		return
	}
	d.gl.DeleteTexture(gl.Texture{Value: uint32(tex)})
}

// AttachTexture calls glFramebufferTexture2D on the bound framebuffer.
func (d *Device) AttachTexture(point device.AttachmentPoint, tex device.Texture) {
	d.gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachmentPoint(point), gl.TEXTURE_2D,
		gl.Texture{Value: uint32(tex)}, 0)
}

// AttachRenderbuffer calls glFramebufferRenderbuffer on the bound framebuffer.
func (d *Device) AttachRenderbuffer(point device.AttachmentPoint, rb device.Renderbuffer) {
	d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachmentPoint(point), gl.RENDERBUFFER,
		gl.Renderbuffer{Value: uint32(rb)})
}

// CheckFramebufferStatus passes the GL status code through unchanged.
func (d *Device) CheckFramebufferStatus() device.Status {
	return device.Status(d.gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
}

// SetViewport calls glViewport.
func (d *Device) SetViewport(r image.Rectangle) {
	d.viewport = r
	d.gl.Viewport(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Viewport returns the last viewport set through this device.
func (d *Device) Viewport() image.Rectangle {
	return d.viewport
}

// Clear calls glClear with the planes in mask.
func (d *Device) Clear(c color.Color, mask device.ClearMask) {
	var bits gl.Enum
	if mask&device.ClearColor != 0 {
		r, g, b, a := c.RGBA()
		d.gl.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&device.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&device.ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		d.gl.Clear(bits)
	}
}

// ReadPixels calls glReadPixels with GL_RGBA/GL_UNSIGNED_BYTE.
func (d *Device) ReadPixels(dst []byte, r image.Rectangle) error {
	if need := r.Dx() * r.Dy() * 4; len(dst) < need {
		return fmt.Errorf("gldevice: read buffer too small: %d < %d", len(dst), need)
	}
	d.gl.ReadPixels(dst, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE)
	if e := d.gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gldevice: glReadPixels failed: 0x%X", uint32(e))
	}
	return nil
}

// Ensure Device implements device.Device.
var _ device.Device = (*Device)(nil)
