package wizard

import (
	"errors"
	"fmt"
	"time"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
)

// State is the active step of the wizard.
type State int

const (
	Initial State = iota
	ImageSelected
	Generating
	Result
	Error
)

var stateNames = map[State]string{
	Initial:       "initial",
	ImageSelected: "image_selected",
	Generating:    "generating",
	Result:        "result",
	Error:         "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrStaleResult       = errors.New("stale generation result")
	ErrClosed            = errors.New("session closed")
)

// Snapshot is the complete wizard state of one session.
type Snapshot struct {
	State        State
	Source       *imagegen.SourceImage
	Generated    *imagegen.GeneratedImage
	Decade       domain.Decade
	ErrorKind    imagegen.ErrorKind
	ErrorMessage string

	// PendingJob is the id of the generation whose result is awaited; zero
	// outside Generating. LastJob only grows, across restarts too.
	PendingJob      uint64
	LastJob         uint64
	GeneratingSince time.Time
}

// Validate checks the presence invariants between the state and the data
// it carries.
func (s Snapshot) Validate() error {
	needsSource := s.State == ImageSelected || s.State == Generating || s.State == Result
	if needsSource && s.Source == nil {
		return fmt.Errorf("%s without source image", s.State)
	}
	if (s.State == Result) != (s.Generated != nil) {
		return fmt.Errorf("%s with generated image present=%t", s.State, s.Generated != nil)
	}
	if (s.State == Error) != (s.ErrorMessage != "") {
		return fmt.Errorf("%s with error message present=%t", s.State, s.ErrorMessage != "")
	}
	if (s.State == Generating) != (s.PendingJob != 0) {
		return fmt.Errorf("%s with pending job %d", s.State, s.PendingJob)
	}
	return nil
}

// clone copies the image structs so callers cannot mutate controller state.
// Byte slices are shared and must be treated as read-only.
func (s Snapshot) clone() Snapshot {
	out := s
	if s.Source != nil {
		src := *s.Source
		out.Source = &src
	}
	if s.Generated != nil {
		gen := *s.Generated
		out.Generated = &gen
	}
	return out
}
