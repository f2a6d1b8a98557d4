// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Framebuffer is a framebuffer object handle. Zero is the null handle.
type Framebuffer uint32

// Renderbuffer is a renderbuffer object handle. Zero is the null handle.
type Renderbuffer uint32

// Texture is a 2D texture handle. Zero is the null handle.
type Texture uint32

// Status is the completeness verdict of a framebuffer.
type Status uint32

// Framebuffer completeness values. Numeric values follow OpenGL ES so
// that adapters can pass raw status codes through; anything else is an
// unknown status.
const (
	StatusComplete                    Status = 0x8CD5
	StatusIncompleteAttachment        Status = 0x8CD6
	StatusIncompleteMissingAttachment Status = 0x8CD7
	StatusIncompleteDimensions        Status = 0x8CD9
	StatusUnsupported                 Status = 0x8CDD
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "Complete"
	case StatusIncompleteAttachment:
		return "IncompleteAttachment"
	case StatusIncompleteMissingAttachment:
		return "MissingAttachment"
	case StatusIncompleteDimensions:
		return "IncompleteDimensions"
	case StatusUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Status(0x%X)", uint32(s))
	}
}

// AttachmentPoint identifies a framebuffer attachment slot.
type AttachmentPoint uint8

// Attachment points. Color slots are ColorAttachment(i).
const (
	DepthAttachment AttachmentPoint = iota
	StencilAttachment
	colorAttachment0
)

// ColorAttachment returns the attachment point of color slot i.
func ColorAttachment(i int) AttachmentPoint {
	return colorAttachment0 + AttachmentPoint(i)
}

// IsColor reports whether p is a color slot.
func (p AttachmentPoint) IsColor() bool {
	return p >= colorAttachment0
}

// ColorIndex returns the color slot index of p, or -1 for depth and stencil.
func (p AttachmentPoint) ColorIndex() int {
	if !p.IsColor() {
		return -1
	}
	return int(p - colorAttachment0)
}

// String returns a human-readable name for the attachment point.
func (p AttachmentPoint) String() string {
	switch p {
	case DepthAttachment:
		return "Depth"
	case StencilAttachment:
		return "Stencil"
	default:
		return fmt.Sprintf("Color%d", p.ColorIndex())
	}
}

// ClearMask selects the planes cleared by Device.Clear.
// Flags can be combined with bitwise OR.
type ClearMask uint8

const (
	// ClearColor clears the color attachments.
	ClearColor ClearMask = 1 << iota

	// ClearDepth clears the depth attachment.
	ClearDepth

	// ClearStencil clears the stencil attachment.
	ClearStencil
)

// PixelFormat is the client-side layout of texel components.
type PixelFormat uint8

// Pixel formats.
const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB
	PixelFormatAlpha
	PixelFormatLuminance
	PixelFormatDepth
	PixelFormatStencil
)

// DataType is the client-side component type of texels.
type DataType uint8

// Data types.
const (
	DataTypeUnsignedByte DataType = iota
	DataTypeUnsignedShort
	DataTypeUnsignedInt
	DataTypeUnsignedInt248
	DataTypeHalfFloat
	DataTypeFloat
)

// TextureDescriptor describes a texture created as a framebuffer attachment.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Format is the GPU-side (internal) format.
	Format gputypes.TextureFormat

	// PixelFormat and DataType describe the client-side layout used when
	// the texture is specified or read back.
	PixelFormat PixelFormat
	DataType    DataType

	// Float marks a floating point color attachment.
	Float bool

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be read back to the CPU.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageTextureBinding allows the texture to be sampled.
	TextureUsageTextureBinding

	// TextureUsageRenderAttachment allows the texture to be a render attachment.
	TextureUsageRenderAttachment
)

// Capabilities describes device limits that affect render target allocation.
type Capabilities struct {
	// MaxTextureSize is the maximum texture and renderbuffer dimension.
	MaxTextureSize int

	// MaxColorAttachments is the number of color slots per framebuffer.
	MaxColorAttachments int

	// SeparateDepthStencil reports whether independent depth and stencil
	// renderbuffers may be attached to one framebuffer. Devices that reject
	// the combination need a packed depth-stencil buffer.
	SeparateDepthStencil bool

	// FloatColorAttachments reports whether float formats are renderable.
	FloatColorAttachments bool

	// VendorName and DeviceName identify the GPU where known.
	VendorName string
	DeviceName string
}
