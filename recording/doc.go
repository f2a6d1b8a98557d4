// Package recording captures the draw calls of a composite pass.
//
// A [Recorder] implements scene.Surface. Every draw call is stored as a
// typed [Command] holding its local coordinates, the transform and alpha
// in effect, and the resulting absolute position. Recordings are used to
// inspect a frame in tests and to replay it onto another surface:
//
//	rec := recording.NewRecorder()
//	root.Draw(rec, 0, 0)
//	for _, c := range rec.Commands() {
//	    fmt.Println(c)
//	}
//	rec.Playback(imageSurface)
package recording
