package software

import "github.com/gogpu/offscreen/device"

// Option configures a Device during creation.
//
// Example:
//
//	// Hardware that rejects separate depth and stencil renderbuffers
//	caps := software.DefaultCapabilities()
//	caps.SeparateDepthStencil = false
//	dev := software.New(software.WithCapabilities(caps))
type Option func(*options)

type options struct {
	screenWidth  int
	screenHeight int
	caps         device.Capabilities
	defaultFB    device.Framebuffer
	handleLimit  int
}

func defaultOptions() options {
	return options{
		screenWidth:  640,
		screenHeight: 480,
		caps:         DefaultCapabilities(),
	}
}

// DefaultCapabilities returns the capabilities of a permissive device.
func DefaultCapabilities() device.Capabilities {
	return device.Capabilities{
		MaxTextureSize:        4096,
		MaxColorAttachments:   4,
		SeparateDepthStencil:  true,
		FloatColorAttachments: true,
		VendorName:            "gogpu",
		DeviceName:            "software",
	}
}

// WithScreenSize sets the size of the system framebuffer.
func WithScreenSize(width, height int) Option {
	return func(o *options) {
		o.screenWidth = width
		o.screenHeight = height
	}
}

// WithCapabilities replaces the reported device capabilities.
// Completeness checks honor them.
func WithCapabilities(caps device.Capabilities) Option {
	return func(o *options) {
		o.caps = caps
	}
}

// WithDefaultFramebuffer makes fb the system framebuffer handle instead of 0,
// as on platforms that render into a framebuffer owned by the window layer.
func WithDefaultFramebuffer(fb device.Framebuffer) Option {
	return func(o *options) {
		o.defaultFB = fb
	}
}

// WithHandleLimit caps the number of live objects of all kinds.
// Create calls beyond the limit fail. Zero means unlimited.
func WithHandleLimit(n int) Option {
	return func(o *options) {
		o.handleLimit = n
	}
}
