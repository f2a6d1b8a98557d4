// Package stage drives a scene frame by frame on the rendering goroutine.
//
// Platform callbacks such as pause, resume and destroy usually arrive on
// another goroutine than the one owning the graphics context. Stage
// queues them and runs them at the start of the next Update, so every
// device call happens on the rendering goroutine:
//
//	st := stage.New(ctx, root, stage.WithTarget(rt))
//
//	// platform goroutine
//	st.Pause()
//	st.ContextLost() // the surface came back with a new context
//	st.Resume()      // rebuilds every registered render target
//
//	// rendering goroutine, once per frame
//	if err := st.Frame(s, elapsed, screen); err != nil {
//		log.Print(err)
//	}
package stage
