package gldevice

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/offscreen/device"
)

// Sized formats from GL ES 3.0 and OES extensions.
const (
	glR8                 gl.Enum = 0x8229
	glRGBA8              gl.Enum = 0x8058
	glRGBA32F            gl.Enum = 0x8814
	glDepth24            gl.Enum = 0x81A6
	glDepth32F           gl.Enum = 0x8CAC
	glDepth24Stencil8OES gl.Enum = 0x88F0
	glHalfFloat          gl.Enum = 0x140B
	glUnsignedInt248OES  gl.Enum = 0x84FA
	glMaxColorAttachment gl.Enum = 0x8CDF
)

// internalFormat maps a gputypes format to a GL internal format.
// Unsized formats are used where ES 2.0 requires them for textures.
func internalFormat(f gputypes.TextureFormat, texture bool) (gl.Enum, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		if texture {
			return gl.RGBA, true
		}
		return glRGBA8, true
	case gputypes.TextureFormatR8Unorm:
		return glR8, true
	case gputypes.TextureFormatRGBA32Float:
		return glRGBA32F, true
	case gputypes.TextureFormatDepth16Unorm:
		return gl.DEPTH_COMPONENT16, true
	case gputypes.TextureFormatDepth24Plus:
		return glDepth24, true
	case gputypes.TextureFormatDepth32Float:
		return glDepth32F, true
	case gputypes.TextureFormatStencil8:
		return gl.STENCIL_INDEX8, true
	case gputypes.TextureFormatDepth24PlusStencil8:
		return glDepth24Stencil8OES, true
	}
	return 0, false
}

func pixelFormat(p device.PixelFormat) gl.Enum {
	switch p {
	case device.PixelFormatRGB:
		return gl.RGB
	case device.PixelFormatAlpha:
		return gl.ALPHA
	case device.PixelFormatLuminance:
		return gl.LUMINANCE
	case device.PixelFormatDepth:
		return gl.DEPTH_COMPONENT
	case device.PixelFormatStencil:
		return gl.STENCIL_INDEX8
	default:
		return gl.RGBA
	}
}

func dataType(t device.DataType) gl.Enum {
	switch t {
	case device.DataTypeUnsignedShort:
		return gl.UNSIGNED_SHORT
	case device.DataTypeUnsignedInt:
		return gl.UNSIGNED_INT
	case device.DataTypeUnsignedInt248:
		return glUnsignedInt248OES
	case device.DataTypeHalfFloat:
		return glHalfFloat
	case device.DataTypeFloat:
		return gl.FLOAT
	default:
		return gl.UNSIGNED_BYTE
	}
}

func attachmentPoint(p device.AttachmentPoint) gl.Enum {
	switch p {
	case device.DepthAttachment:
		return gl.DEPTH_ATTACHMENT
	case device.StencilAttachment:
		return gl.STENCIL_ATTACHMENT
	default:
		return gl.COLOR_ATTACHMENT0 + gl.Enum(p.ColorIndex())
	}
}
