package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Progress)(nil)

// Progress is a progrock.Writer that renders vertex logs and completions as plain lines.
// It writes nothing until an output is set.
type Progress struct {
	mu     sync.Mutex
	output *termenv.Output
	names  map[string]string
	done   map[string]bool
	cached map[string]bool
}

// NewProgress creates a Progress writing to w. A nil w disables rendering.
func NewProgress(w io.Writer) *Progress {
	p := &Progress{
		names:  make(map[string]string),
		done:   make(map[string]bool),
		cached: make(map[string]bool),
	}
	p.SetOutput(w)
	return p
}

// SetOutput changes where progress is rendered. A nil w disables rendering.
// Colors are disabled when NO_COLOR is set.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w == nil {
		p.output = nil
		return
	}
	profile := termenv.ANSI
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}
	p.output = termenv.NewOutput(w, termenv.WithProfile(profile))
}

// WriteStatus renders the log lines and completed vertices of update.
func (p *Progress) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.Vertexes {
		p.names[v.Id] = v.Name
		if v.Cached {
			p.cached[v.Id] = true
		}
	}

	if p.output == nil {
		p.forgetCompleted(update)
		return nil
	}

	for _, l := range update.Logs {
		name, ok := p.names[l.Vertex]
		if !ok {
			continue
		}
		for _, line := range bytes.Split(bytes.TrimRight(l.Data, "\n"), []byte("\n")) {
			p.printLocked(name, string(line))
		}
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil || p.done[v.Id] {
			continue
		}
		p.done[v.Id] = true

		switch {
		case v.Error != nil:
			symbol := p.output.String("✗").Foreground(termenv.ANSIRed).String()
			p.printLocked(v.Name, symbol+" Failed: "+*v.Error)
		case p.cached[v.Id]:
			symbol := p.output.String("✓").Foreground(termenv.ANSIGreen).String()
			p.printLocked(v.Name, symbol+" Completed (cached)")
		default:
			symbol := p.output.String("✓").Foreground(termenv.ANSIGreen).String()
			p.printLocked(v.Name, symbol+" Completed")
		}
	}
	return nil
}

// forgetCompleted drops state of completed vertices while rendering is disabled.
func (p *Progress) forgetCompleted(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		if v.Completed != nil {
			delete(p.names, v.Id)
			delete(p.cached, v.Id)
		}
	}
}

// Close is a no-op; lines are written as they arrive.
func (p *Progress) Close() error {
	return nil
}

// printLocked must be called with p.mu held.
func (p *Progress) printLocked(name, line string) {
	if line == "" {
		return
	}
	prefix := p.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(p.output, "%s %s\n", prefix, line)
}
