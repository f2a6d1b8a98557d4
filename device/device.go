// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the graphics capability surface consumed by the
// render target core.
//
// The interface mirrors the framebuffer subset of OpenGL ES: handles are
// plain integers, framebuffer and renderbuffer operations act on the
// currently bound object, and completeness is reported as a [Status].
// Implementations are not safe for concurrent use; every call must come
// from the goroutine that owns the graphics context.
package device

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Device is the opaque GPU capability used by render targets.
//
// Create* methods return the zero handle when the device refuses to
// allocate. Delete* methods ignore the zero handle and handles the device
// does not know about.
type Device interface {
	// Capabilities reports device limits and supported format combinations.
	Capabilities() Capabilities

	// CreateFramebuffer allocates a framebuffer object.
	CreateFramebuffer() Framebuffer

	// DeleteFramebuffer releases a framebuffer object.
	DeleteFramebuffer(fb Framebuffer)

	// BindFramebuffer makes fb the current draw and read framebuffer.
	BindFramebuffer(fb Framebuffer)

	// BoundFramebuffer returns the currently bound framebuffer.
	// On some platforms the system framebuffer is not handle 0, so this is
	// how the default framebuffer is discovered.
	BoundFramebuffer() Framebuffer

	// CreateRenderbuffer allocates a renderbuffer object without storage.
	CreateRenderbuffer() Renderbuffer

	// DeleteRenderbuffer releases a renderbuffer object.
	DeleteRenderbuffer(rb Renderbuffer)

	// BindRenderbuffer makes rb the current renderbuffer.
	BindRenderbuffer(rb Renderbuffer)

	// RenderbufferStorage allocates storage for the bound renderbuffer.
	RenderbufferStorage(format gputypes.TextureFormat, width, height int)

	// CreateTexture allocates a 2D texture usable as a color attachment.
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// DeleteTexture releases a texture.
	DeleteTexture(tex Texture)

	// AttachTexture attaches tex to an attachment point of the bound framebuffer.
	// Attaching the zero texture detaches the point.
	AttachTexture(point AttachmentPoint, tex Texture)

	// AttachRenderbuffer attaches rb to an attachment point of the bound framebuffer.
	// Attaching the zero renderbuffer detaches the point.
	AttachRenderbuffer(point AttachmentPoint, rb Renderbuffer)

	// CheckFramebufferStatus reports completeness of the bound framebuffer.
	CheckFramebufferStatus() Status

	// SetViewport sets the viewport rectangle in framebuffer pixels.
	SetViewport(r image.Rectangle)

	// Viewport returns the current viewport rectangle.
	Viewport() image.Rectangle

	// Clear clears the planes selected by mask on the bound framebuffer.
	// c is used for the color plane.
	Clear(c color.Color, mask ClearMask)

	// ReadPixels copies RGBA8 pixels of r from color attachment 0 of the
	// bound framebuffer into dst. Rows are bottom-up as in OpenGL.
	// dst must hold at least r.Dx()*r.Dy()*4 bytes.
	ReadPixels(dst []byte, r image.Rectangle) error
}
