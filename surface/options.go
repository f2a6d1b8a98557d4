package surface

import "golang.org/x/image/draw"

// Option configures an ImageSurface.
type Option func(*options)

type options struct {
	interp draw.Interpolator
}

func defaultOptions() options {
	return options{interp: draw.ApproxBiLinear}
}

// WithInterpolator sets the resampling kernel used for images.
// A nil interpolator keeps draw.ApproxBiLinear.
func WithInterpolator(i draw.Interpolator) Option {
	return func(o *options) {
		if i != nil {
			o.interp = i
		}
	}
}
