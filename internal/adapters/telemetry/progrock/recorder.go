// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/lunaria/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w        progrock.Writer
	rec      *progrock.Recorder
	progress *Progress
}

// New creates a new Recorder rendering progress lines once an output is set.
func New() *Recorder {
	progress := NewProgress(nil)
	r := NewRecorder(progress)
	r.progress = progress
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex.
// Vertices are addressed by the digest of their name, so recording the same name twice
// updates the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// SetProgressOutput renders vertex logs and completions to w. A nil w disables rendering.
// It has no effect on recorders built around a custom writer.
func (r *Recorder) SetProgressOutput(w io.Writer) {
	if r.progress != nil {
		r.progress.SetOutput(w)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
