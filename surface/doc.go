// Package surface provides CPU implementations of scene.Surface.
//
// ImageSurface rasterizes the composite pass into an *image.RGBA using
// golang.org/x/image/draw affine transforms. A surface created with
// NewDeviceSurface resolves its destination on every draw call from the
// framebuffer bound on a software device, so the same surface follows a
// render target through Begin and End:
//
//	dev := software.New()
//	ctx := target.NewContext(dev)
//	_, rt, _ := target.NewBuilder(ctx).
//		AddBasicColorAttachment(gputypes.TextureFormatRGBA8Unorm, device.DataTypeUnsignedByte).
//		Build(256, 256)
//	if err := rt.Allocate(); err != nil {
//		return err
//	}
//
//	s := surface.NewDeviceSurface(dev)
//	rt.Begin()
//	root.Draw(s, 0, 0)
//	rt.End()
//
//	img := rt.ReadPixels(0, true, true)
package surface
