package gldevice

import (
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/offscreen/device"
)

func TestInternalFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  gputypes.TextureFormat
		texture bool
		want    gl.Enum
		ok      bool
	}{
		{"rgba8 texture", gputypes.TextureFormatRGBA8Unorm, true, gl.RGBA, true},
		{"rgba8 renderbuffer", gputypes.TextureFormatRGBA8Unorm, false, glRGBA8, true},
		{"depth16", gputypes.TextureFormatDepth16Unorm, false, gl.DEPTH_COMPONENT16, true},
		{"stencil8", gputypes.TextureFormatStencil8, false, gl.STENCIL_INDEX8, true},
		{"packed", gputypes.TextureFormatDepth24PlusStencil8, false, glDepth24Stencil8OES, true},
		{"undefined", gputypes.TextureFormatUndefined, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := internalFormat(tt.format, tt.texture)
			if ok != tt.ok {
				t.Fatalf("internalFormat() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("internalFormat() = 0x%X, want 0x%X", uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestAttachmentPoint(t *testing.T) {
	tests := []struct {
		point device.AttachmentPoint
		want  gl.Enum
	}{
		{device.DepthAttachment, gl.DEPTH_ATTACHMENT},
		{device.StencilAttachment, gl.STENCIL_ATTACHMENT},
		{device.ColorAttachment(0), gl.COLOR_ATTACHMENT0},
		{device.ColorAttachment(2), gl.COLOR_ATTACHMENT0 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			if got := attachmentPoint(tt.point); got != tt.want {
				t.Errorf("attachmentPoint(%v) = 0x%X, want 0x%X", tt.point, uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestStatusPassThrough(t *testing.T) {
	// The device package mirrors the GL completeness codes.
	tests := []struct {
		gl   gl.Enum
		want device.Status
	}{
		{gl.FRAMEBUFFER_COMPLETE, device.StatusComplete},
		{gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT, device.StatusIncompleteAttachment},
		{gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT, device.StatusIncompleteMissingAttachment},
		{gl.FRAMEBUFFER_INCOMPLETE_DIMENSIONS, device.StatusIncompleteDimensions},
		{gl.FRAMEBUFFER_UNSUPPORTED, device.StatusUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := device.Status(tt.gl); got != tt.want {
				t.Errorf("Status(0x%X) = %v, want %v", uint32(tt.gl), got, tt.want)
			}
		})
	}
}

func TestDataTypeAndPixelFormat(t *testing.T) {
	if got := dataType(device.DataTypeFloat); got != gl.FLOAT {
		t.Errorf("dataType(Float) = 0x%X, want FLOAT", uint32(got))
	}
	if got := dataType(device.DataTypeUnsignedByte); got != gl.UNSIGNED_BYTE {
		t.Errorf("dataType(UnsignedByte) = 0x%X, want UNSIGNED_BYTE", uint32(got))
	}
	if got := pixelFormat(device.PixelFormatRGBA); got != gl.RGBA {
		t.Errorf("pixelFormat(RGBA) = 0x%X, want RGBA", uint32(got))
	}
	if got := pixelFormat(device.PixelFormatLuminance); got != gl.LUMINANCE {
		t.Errorf("pixelFormat(Luminance) = 0x%X, want LUMINANCE", uint32(got))
	}
}
