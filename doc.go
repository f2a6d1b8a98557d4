// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package offscreen provides off-screen render targets and a retained 2D
// scene graph that draws into them.
//
// # Overview
//
// A render target is a framebuffer object plus its color textures and
// optional depth/stencil renderbuffers. Targets are described with a
// builder, allocated against a [device.Device], and registered with the
// owning [target.Context] so that they can be rebuilt in place when the GPU
// context is lost (for example when a mobile app resumes).
//
//	dev := software.New()
//	ctx := target.NewContext(dev)
//
//	_, rt, err := target.NewBuilder(ctx).
//	    AddBasicColorAttachment(gputypes.TextureFormatRGBA8Unorm, device.DataTypeUnsignedByte).
//	    AddBasicDepthRenderBuffer().
//	    Build(256, 256)
//	if err != nil { ... }
//	if err := rt.Allocate(); err != nil { ... }
//
//	rt.Begin()
//	root.Draw(surface.NewDeviceSurface(dev), 0, 0)
//	rt.EndViewport(image.Rect(0, 0, 800, 600))
//
// # Packages
//
//   - device: the graphics capability surface consumed by the core
//   - device/software: CPU emulation of that surface, used for tests and
//     headless rendering
//   - device/gldevice: adapter for golang.org/x/mobile/gl
//   - target: builder, render target lifecycle, context and registry
//   - scene: node tree with update and composite traversal
//   - surface: drawing surfaces for the scene graph
//   - stage: per-frame driver and lifecycle marshaling
//
// # Threading
//
// Targets, nodes and devices must be used from the goroutine that owns the
// graphics context. Only [stage.Stage] lifecycle methods and [SetLogger] may
// be called from other goroutines.
package offscreen
