package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner displays an animated progress indicator. It writes to stderr by
// default and draws nothing when the output is not a terminal, so piped
// output stays clean.
type Spinner struct {
	mu   sync.Mutex
	out  io.Writer
	tty  bool
	msg  string
	done chan struct{}
}

// NewSpinner creates a Spinner writing to stderr (not yet running).
func NewSpinner() *Spinner {
	fi, err := os.Stderr.Stat()
	tty := err == nil && fi.Mode()&os.ModeCharDevice != 0
	return &Spinner{out: os.Stderr, tty: tty}
}

// NewSpinnerTo creates a Spinner writing to out, always drawing. Used by
// tests and non-terminal surfaces.
func NewSpinnerTo(out io.Writer) *Spinner {
	return &Spinner{out: out, tty: true}
}

// Start begins the animation with the given message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	s.msg = msg
	if !s.tty || s.done != nil {
		s.mu.Unlock()
		return
	}
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run()
}

// Update changes the message while the spinner is running.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	tty := s.tty
	s.mu.Unlock()

	if tty {
		fmt.Fprint(s.out, "\r\033[K")
	}
}

func (s *Spinner) run() {
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	i := 0
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r\033[K%c %s", frames[i%len(frames)], msg)
			i++
		}
	}
}
