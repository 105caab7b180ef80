package wizard

import (
	"fmt"
	"time"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
)

// Event is one of FileChosen, DecadeChosen, GenerationSucceeded,
// GenerationFailed or Restart.
type Event interface {
	isEvent()
}

// FileChosen carries a newly selected file. Its Ref must be empty.
type FileChosen struct {
	Image imagegen.SourceImage
}

type DecadeChosen struct {
	Decade domain.Decade
	At     time.Time
}

type GenerationSucceeded struct {
	Job   uint64
	Image imagegen.GeneratedImage
}

type GenerationFailed struct {
	Job uint64
	Err error
}

type Restart struct{}

func (FileChosen) isEvent()          {}
func (DecadeChosen) isEvent()        {}
func (GenerationSucceeded) isEvent() {}
func (GenerationFailed) isEvent()    {}
func (Restart) isEvent()             {}

type EffectKind int

const (
	// EffectRelease releases Effect.Ref.
	EffectRelease EffectKind = iota + 1
	// EffectAcquireSource acquires a reference for the next snapshot's Source.
	EffectAcquireSource
	// EffectAcquireGenerated acquires a reference for the next snapshot's Generated.
	EffectAcquireGenerated
	// EffectGenerate starts Effect.Job.
	EffectGenerate
)

type Effect struct {
	Kind EffectKind
	Ref  string
	Job  Job
}

// Job is one generation request, tagged with the id the result must echo.
type Job struct {
	ID     uint64
	Decade domain.Decade
	Source imagegen.SourceImage
}

// Transition computes the next snapshot for ev. Effects are returned in the
// order they must be applied; releases always precede acquisitions. On
// error the input snapshot is returned unchanged and no effect is due.
func Transition(s Snapshot, ev Event) (Snapshot, []Effect, error) {
	switch ev := ev.(type) {
	case FileChosen:
		return fileChosen(s, ev)
	case DecadeChosen:
		return decadeChosen(s, ev)
	case GenerationSucceeded:
		return generationSucceeded(s, ev)
	case GenerationFailed:
		return generationFailed(s, ev)
	case Restart:
		return Snapshot{State: Initial, LastJob: s.LastJob}, releaseAll(s), nil
	default:
		return s, nil, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func fileChosen(s Snapshot, ev FileChosen) (Snapshot, []Effect, error) {
	if s.State == Generating {
		return s, nil, fmt.Errorf("%w: file chosen while %s", ErrInvalidTransition, s.State)
	}

	if !imagegen.IsImageMIME(ev.Image.MIMEType) {
		// The previously selected photo, if any, stays available.
		var effects []Effect
		if s.Generated != nil {
			effects = append(effects, release(s.Generated.Ref)...)
		}
		next := s
		next.State = Error
		next.Generated = nil
		next.ErrorKind = imagegen.KindInvalidInput
		next.ErrorMessage = imagegen.UserMessage(imagegen.KindInvalidInput)
		return next, effects, nil
	}

	src := ev.Image
	src.Ref = ""
	effects := releaseAll(s)
	effects = append(effects, Effect{Kind: EffectAcquireSource})
	return Snapshot{State: ImageSelected, Source: &src, LastJob: s.LastJob}, effects, nil
}

func decadeChosen(s Snapshot, ev DecadeChosen) (Snapshot, []Effect, error) {
	if s.State != ImageSelected && s.State != Error {
		return s, nil, fmt.Errorf("%w: decade chosen while %s", ErrInvalidTransition, s.State)
	}
	if s.Source == nil {
		return s, nil, fmt.Errorf("%w: decade chosen without a photo", ErrInvalidTransition)
	}
	if !ev.Decade.Valid() {
		return s, nil, fmt.Errorf("%w: %q", domain.ErrUnknownDecade, ev.Decade)
	}

	next := s
	next.State = Generating
	next.Decade = ev.Decade
	next.ErrorKind = imagegen.KindNone
	next.ErrorMessage = ""
	next.LastJob = s.LastJob + 1
	next.PendingJob = next.LastJob
	next.GeneratingSince = ev.At
	job := Job{ID: next.PendingJob, Decade: ev.Decade, Source: *s.Source}
	return next, []Effect{{Kind: EffectGenerate, Job: job}}, nil
}

func generationSucceeded(s Snapshot, ev GenerationSucceeded) (Snapshot, []Effect, error) {
	if err := checkPending(s, ev.Job); err != nil {
		return s, nil, err
	}
	img := ev.Image
	img.Ref = ""
	next := s
	next.State = Result
	next.Generated = &img
	next.PendingJob = 0
	next.GeneratingSince = time.Time{}
	return next, []Effect{{Kind: EffectAcquireGenerated}}, nil
}

func generationFailed(s Snapshot, ev GenerationFailed) (Snapshot, []Effect, error) {
	if err := checkPending(s, ev.Job); err != nil {
		return s, nil, err
	}
	kind := imagegen.Classify(ev.Err)
	if kind == imagegen.KindNone {
		kind = imagegen.KindTransport
	}
	next := s
	next.State = Error
	next.ErrorKind = kind
	next.ErrorMessage = imagegen.UserMessage(kind)
	next.PendingJob = 0
	next.GeneratingSince = time.Time{}
	return next, nil, nil
}

func checkPending(s Snapshot, job uint64) error {
	if s.State != Generating || s.PendingJob != job {
		return fmt.Errorf("%w: job %d, pending %d in %s", ErrStaleResult, job, s.PendingJob, s.State)
	}
	return nil
}

func releaseAll(s Snapshot) []Effect {
	var effects []Effect
	if s.Source != nil {
		effects = append(effects, release(s.Source.Ref)...)
	}
	if s.Generated != nil {
		effects = append(effects, release(s.Generated.Ref)...)
	}
	return effects
}

func release(ref string) []Effect {
	if ref == "" {
		return nil
	}
	return []Effect{{Kind: EffectRelease, Ref: ref}}
}
