package console

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner shows progress on stderr. It does nothing when stderr is not a
// terminal, so piped output stays clean.
type Spinner struct {
	spinner *spinner.Spinner
	enabled bool
}

func NewSpinner(message string) *Spinner {
	s := &Spinner{
		enabled: isatty.IsTerminal(os.Stderr.Fd()),
	}
	if s.enabled {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.spinner.Suffix = " " + message
		_ = s.spinner.Color("cyan")
	}
	return s
}

func (s *Spinner) Start() {
	if s.enabled {
		s.spinner.Start()
	}
}

func (s *Spinner) Stop() {
	if s.enabled {
		s.spinner.Stop()
	}
}

// UpdateMessage replaces the text shown next to the spinner. It is safe to
// call while the spinner runs.
func (s *Spinner) UpdateMessage(message string) {
	if s.enabled {
		s.spinner.Lock()
		s.spinner.Suffix = " " + message
		s.spinner.Unlock()
	}
}
