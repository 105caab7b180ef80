package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
	"timelessme/internal/infra"
)

const journalTimeout = 5 * time.Second

// Deps are shared by every controller of a Store.
type Deps struct {
	Refs        *References
	Transformer imagegen.Transformer
	// Journal is optional.
	Journal domain.GenerationRepository
	Logger  infra.Logger
	Now     func() time.Time
}

// Controller drives the wizard of one session. Events are serialized under
// mu; generation jobs run on their own goroutine and report back through
// the same event path.
type Controller struct {
	id   string
	deps Deps

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	snap   Snapshot
	closed bool
}

func NewController(id string, deps Deps) *Controller {
	if deps.Refs == nil {
		deps.Refs = NewReferences()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		id:     id,
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
		snap:   Snapshot{State: Initial},
	}
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// ChooseFile selects a new photo. A non-image MIME type moves the wizard to
// Error without discarding an earlier photo.
func (c *Controller) ChooseFile(img imagegen.SourceImage) (Snapshot, error) {
	return c.dispatch(FileChosen{Image: img})
}

// ChooseDecade starts a generation for the current photo.
func (c *Controller) ChooseDecade(d domain.Decade) (Snapshot, error) {
	return c.dispatch(DecadeChosen{Decade: d, At: c.deps.Now()})
}

// Restart returns to Initial. A generation still in flight is left to
// finish and its result is discarded.
func (c *Controller) Restart() (Snapshot, error) {
	return c.dispatch(Restart{})
}

// Wait blocks until every started generation has reported back.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close releases every reference the session holds and cancels in-flight
// generations. Later events fail with ErrClosed. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, e := range releaseAll(c.snap) {
		c.deps.Refs.Release(e.Ref)
	}
	c.snap = Snapshot{State: Initial, LastJob: c.snap.LastJob}
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller) dispatch(ev Event) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Snapshot{}, ErrClosed
	}

	next, effects, err := Transition(c.snap, ev)
	if err != nil {
		return c.snap.clone(), err
	}
	for _, e := range effects {
		switch e.Kind {
		case EffectRelease:
			c.deps.Refs.Release(e.Ref)
		case EffectAcquireSource:
			next.Source.Ref = c.deps.Refs.Acquire(next.Source.MIMEType, next.Source.Data)
		case EffectAcquireGenerated:
			next.Generated.Ref = c.deps.Refs.Acquire(next.Generated.MIMEType, next.Generated.Data)
		case EffectGenerate:
			c.start(e.Job)
		}
	}
	if prev := c.snap.State; prev != next.State {
		c.deps.Logger.Debug().
			Str("session_id", c.id).
			Str("from", prev.String()).
			Str("to", next.State.String()).
			Msg("wizard transition")
	}
	c.snap = next
	return next.clone(), nil
}

// start must be called with mu held.
func (c *Controller) start(job Job) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		started := c.deps.Now()
		img, err := c.deps.Transformer.Transform(c.ctx, job.Source, job.Decade)
		latency := c.deps.Now().Sub(started)

		var ev Event = GenerationSucceeded{Job: job.ID, Image: img}
		outcome, kind := domain.OutcomeSucceeded, imagegen.KindNone
		if err != nil {
			ev = GenerationFailed{Job: job.ID, Err: err}
			outcome, kind = domain.OutcomeFailed, imagegen.Classify(err)
			c.deps.Logger.Error().Err(err).
				Str("session_id", c.id).
				Str("decade", job.Decade.String()).
				Str("error_kind", string(kind)).
				Msg("generation failed")
		}

		if _, derr := c.dispatch(ev); derr != nil {
			if !errors.Is(derr, ErrStaleResult) && !errors.Is(derr, ErrClosed) {
				c.deps.Logger.Error().Err(derr).Str("session_id", c.id).Msg("apply generation result")
			}
			outcome = domain.OutcomeDiscarded
			c.deps.Logger.Info().
				Str("session_id", c.id).
				Uint64("job", job.ID).
				Msg("generation result discarded")
		}
		c.record(job, outcome, kind, latency)
	}()
}

func (c *Controller) record(job Job, outcome domain.GenerationOutcome, kind imagegen.ErrorKind, latency time.Duration) {
	if c.deps.Journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	event := domain.GenerationEvent{
		ID:        uuid.NewString(),
		SessionID: c.id,
		Decade:    job.Decade,
		Outcome:   outcome,
		ErrorKind: string(kind),
		Latency:   latency,
		CreatedAt: c.deps.Now().UTC(),
	}
	if err := c.deps.Journal.Record(ctx, event); err != nil {
		c.deps.Logger.Warn().Err(err).Str("session_id", c.id).Msg("record generation event")
	}
}
