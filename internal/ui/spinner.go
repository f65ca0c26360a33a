package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/ontoq/internal/query"
)

// Spinner displays an animated spinner with a message on stderr.
type Spinner struct {
	message string
	frames  []string
	out     io.Writer
	tty     bool
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	current int
}

// Default spinner frames (dots style)
var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		frames:  defaultFrames,
		out:     os.Stderr,
		tty:     isatty.IsTerminal(os.Stderr.Fd()),
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation. Off a terminal it does nothing.
func (s *Spinner) Start() {
	if !s.tty {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[s.current%len(s.frames)]
				s.current++
				s.mu.Unlock()
				fmt.Fprintf(s.out, "\r%s %s", Bold.Render(frame), s.message)
			}
		}
	}()
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	if !s.tty {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// EvaluationProgress prints a running count of evaluated query nodes.
// It implements query.Listener.
type EvaluationProgress struct {
	out     io.Writer
	enabled bool
	mu      sync.Mutex
	nodes   int
	last    query.Progress
}

// NewEvaluationProgress reports to stderr when stderr is a terminal.
func NewEvaluationProgress() *EvaluationProgress {
	return NewEvaluationProgressTo(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
}

// NewEvaluationProgressTo reports to out. A disabled reporter only counts.
func NewEvaluationProgressTo(out io.Writer, enabled bool) *EvaluationProgress {
	return &EvaluationProgress{out: out, enabled: enabled}
}

// OnProgress records one evaluated node.
func (p *EvaluationProgress) OnProgress(pr query.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes++
	p.last = pr
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.out, "\r\033[KEvaluating %s %s",
		Muted.Render(fmt.Sprintf("(%d nodes)", p.nodes)),
		Muted.Render(fmt.Sprintf("%s: %d matches", pr.Node, pr.Matches)))
}

// Nodes returns how many nodes have reported so far.
func (p *EvaluationProgress) Nodes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nodes
}

// Last returns the most recent report. After a successful evaluation this is
// the root of the query tree.
func (p *EvaluationProgress) Last() query.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Done clears the progress line.
func (p *EvaluationProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.nodes > 0 {
		fmt.Fprint(p.out, "\r\033[K")
	}
}
