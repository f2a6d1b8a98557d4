package software

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/offscreen/device"
)

// CheckFramebufferStatus reports completeness of the bound framebuffer.
//
// Rules, in evaluation order:
//   - the system framebuffer is always complete, the null one undefined
//   - a missing object, a renderbuffer without storage, a texture on a
//     depth or stencil point, or a format that does not match its point
//     makes the attachment incomplete
//   - attachments of different sizes are incomplete dimensions
//   - no attachment at all is a missing attachment
//   - color slots beyond MaxColorAttachments, float color without
//     FloatColorAttachments, and distinct depth and stencil renderbuffers
//     without SeparateDepthStencil are unsupported
func (d *Device) CheckFramebufferStatus() device.Status {
	if d.boundFB == d.opts.defaultFB {
		return device.StatusComplete
	}
	fb, ok := d.framebuffers[d.boundFB]
	if !ok {
		return statusUndefined
	}

	var (
		size        image.Point
		sized       bool
		mismatch    bool
		unsupported bool
	)
	for point, a := range fb.attachments {
		w, h, float, ok := d.resolve(point, a)
		if !ok {
			return device.StatusIncompleteAttachment
		}
		if !sized {
			size, sized = image.Pt(w, h), true
		} else if size != image.Pt(w, h) {
			mismatch = true
		}
		if point.IsColor() {
			if point.ColorIndex() >= d.opts.caps.MaxColorAttachments {
				unsupported = true
			}
			if float && !d.opts.caps.FloatColorAttachments {
				unsupported = true
			}
		}
	}
	if mismatch {
		return device.StatusIncompleteDimensions
	}
	if len(fb.attachments) == 0 {
		return device.StatusIncompleteMissingAttachment
	}

	depth, hasDepth := fb.attachments[device.DepthAttachment]
	stencil, hasStencil := fb.attachments[device.StencilAttachment]
	if hasDepth && hasStencil && depth.rb != stencil.rb && !d.opts.caps.SeparateDepthStencil {
		unsupported = true
	}
	if unsupported {
		return device.StatusUnsupported
	}
	return device.StatusComplete
}

// resolve returns the size of an attachment and whether it is usable at point.
func (d *Device) resolve(point device.AttachmentPoint, a attachment) (w, h int, float, ok bool) {
	if a.tex != 0 {
		t, exists := d.textures[a.tex]
		if !exists || !point.IsColor() {
			return 0, 0, false, false
		}
		return t.desc.Width, t.desc.Height, t.desc.Float, true
	}
	rb, exists := d.renderbuffers[a.rb]
	if !exists || !rb.stored {
		return 0, 0, false, false
	}
	if !formatFits(point, rb.format) {
		return 0, 0, false, false
	}
	return rb.width, rb.height, false, true
}

func formatFits(point device.AttachmentPoint, format gputypes.TextureFormat) bool {
	switch point {
	case device.DepthAttachment:
		return HasDepth(format)
	case device.StencilAttachment:
		return HasStencil(format)
	default:
		return !HasDepth(format) && !HasStencil(format)
	}
}

// HasDepth reports whether format carries a depth plane.
func HasDepth(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float:
		return true
	}
	return false
}

// HasStencil reports whether format carries a stencil plane.
func HasStencil(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatStencil8,
		gputypes.TextureFormatDepth24PlusStencil8:
		return true
	}
	return false
}
