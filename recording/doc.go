// Package recording captures drawing operations as typed commands and
// replays them into output backends.
//
// The recording system is what lets one sketch.Drawing produce PNG, SVG,
// PDF or EPS output without the drawing code knowing which. It follows a
// Command pattern with three parts:
//
//   - Recorder: appends commands and stores their resources
//   - Recording: the immutable result, replayed with Playback
//   - Backend: turns commands into a concrete file format
//
// All geometry reaching a backend is already in device space: the caller
// (normally sketch.Drawing) multiplies path points by its current transform
// before recording them. Backends therefore never see user transforms,
// except for images, whose placement is carried as an image-to-device
// Matrix.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(400, 300)
//	p := recording.NewPath()
//	p.MoveTo(10, 10)
//	p.LineTo(200, 10)
//	p.LineTo(100, 150)
//	p.Close()
//	rec.FillPath(p, recording.NewSolidBrush(recording.Color{R: 1, A: 1}), recording.FillRuleNonZero)
//	r := rec.Finish()
//
//	b, err := recording.NewBackend("svg")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
//	_, err = b.(recording.WriterBackend).WriteTo(w)
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    _ "github.com/gogpu/sketch/recording/backends/pdf" // registers "pdf"
//	    _ "github.com/gogpu/sketch/recording/backends/svg" // registers "svg"
//	)
//
// The sketch package imports every bundled backend, so the registry is
// fully populated for any program that draws through sketch.
//
// # Resource Management
//
// Paths, brushes and images are stored in a ResourcePool and referenced by
// typed handles (PathRef, BrushRef, ImageRef). Paths are cloned on insert so
// the caller may keep mutating its own copy.
//
// # Thread Safety
//
// Recorder is not safe for concurrent use. A finished Recording is
// read-only and may be played back from several goroutines, each with its
// own Backend. The backend registry is safe for concurrent use.
package recording
