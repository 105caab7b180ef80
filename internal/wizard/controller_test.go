package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
)

type fakeTransformer struct {
	mu     sync.Mutex
	calls  int
	gate   chan struct{}
	result imagegen.GeneratedImage
	err    error
}

func (f *fakeTransformer) Transform(ctx context.Context, src imagegen.SourceImage, d domain.Decade) (imagegen.GeneratedImage, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return imagegen.GeneratedImage{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeTransformer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeJournal struct {
	mu     sync.Mutex
	events []domain.GenerationEvent
}

func (j *fakeJournal) Record(_ context.Context, ev domain.GenerationEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
	return nil
}

func (j *fakeJournal) Summary(context.Context) ([]domain.GenerationCount, error) {
	return nil, nil
}

func (j *fakeJournal) Events() []domain.GenerationEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.GenerationEvent(nil), j.events...)
}

func generated() imagegen.GeneratedImage {
	return imagegen.GeneratedImage{
		DataURI:  imagegen.EncodeDataURI("image/png", []byte("restyled")),
		MIMEType: "image/png",
		Data:     []byte("restyled"),
	}
}

func newTestController(t *testing.T, tr imagegen.Transformer) (*Controller, *References, *fakeJournal) {
	t.Helper()
	refs := NewReferences()
	journal := &fakeJournal{}
	c := NewController("session-1", Deps{Refs: refs, Transformer: tr, Journal: journal})
	t.Cleanup(func() {
		c.Close()
		c.Wait()
	})
	return c, refs, journal
}

func source() imagegen.SourceImage {
	return imagegen.SourceImage{Data: []byte("jpeg-bytes"), MIMEType: "image/jpeg", Name: "me.jpg"}
}

func TestControllerHappyPath(t *testing.T) {
	tr := &fakeTransformer{result: generated()}
	c, refs, journal := newTestController(t, tr)

	snap, err := c.ChooseFile(source())
	require.NoError(t, err)
	require.Equal(t, ImageSelected, snap.State)
	require.NotEmpty(t, snap.Source.Ref)

	blob, ok := refs.Open(snap.Source.Ref)
	require.True(t, ok)
	require.Equal(t, "image/jpeg", blob.MIMEType)
	require.Equal(t, []byte("jpeg-bytes"), blob.Data)

	_, err = c.ChooseDecade(domain.Decade1980s)
	require.NoError(t, err)
	c.Wait()

	snap = c.Snapshot()
	require.Equal(t, Result, snap.State)
	require.Equal(t, domain.Decade1980s, snap.Decade)
	require.Equal(t, generated().DataURI, snap.Generated.DataURI)
	require.NoError(t, snap.Validate())
	require.Equal(t, 2, refs.Live())
	require.Equal(t, 1, tr.Calls())

	events := journal.Events()
	require.Len(t, events, 1)
	require.Equal(t, domain.OutcomeSucceeded, events[0].Outcome)
	require.Equal(t, "session-1", events[0].SessionID)
	require.Equal(t, domain.Decade1980s, events[0].Decade)
	require.Empty(t, events[0].ErrorKind)
}

func TestControllerMissingKey(t *testing.T) {
	tr := &fakeTransformer{err: imagegen.ErrMissingAPIKey}
	c, _, journal := newTestController(t, tr)

	_, err := c.ChooseFile(source())
	require.NoError(t, err)
	_, err = c.ChooseDecade(domain.Decade1950s)
	require.NoError(t, err)
	c.Wait()

	snap := c.Snapshot()
	require.Equal(t, Error, snap.State)
	require.Equal(t, "Failed to generate image. API_KEY environment variable is not set.", snap.ErrorMessage)
	require.NotNil(t, snap.Source)

	events := journal.Events()
	require.Len(t, events, 1)
	require.Equal(t, domain.OutcomeFailed, events[0].Outcome)
	require.Equal(t, string(imagegen.KindConfiguration), events[0].ErrorKind)
}

func TestControllerRejectsSecondDecadeWhileGenerating(t *testing.T) {
	tr := &fakeTransformer{gate: make(chan struct{}), result: generated()}
	c, _, _ := newTestController(t, tr)

	_, err := c.ChooseFile(source())
	require.NoError(t, err)
	_, err = c.ChooseDecade(domain.Decade1990s)
	require.NoError(t, err)

	snap, err := c.ChooseDecade(domain.Decade2000s)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, Generating, snap.State)
	require.Equal(t, domain.Decade1990s, snap.Decade)

	close(tr.gate)
	c.Wait()
	require.Equal(t, 1, tr.Calls())
	require.Equal(t, Result, c.Snapshot().State)
}

func TestControllerRestartDiscardsInFlightResult(t *testing.T) {
	tr := &fakeTransformer{gate: make(chan struct{}), result: generated()}
	c, refs, journal := newTestController(t, tr)

	_, err := c.ChooseFile(source())
	require.NoError(t, err)
	_, err = c.ChooseDecade(domain.Decade1970s)
	require.NoError(t, err)

	snap, err := c.Restart()
	require.NoError(t, err)
	require.Equal(t, Initial, snap.State)
	require.Zero(t, refs.Live())

	close(tr.gate)
	c.Wait()

	snap = c.Snapshot()
	require.Equal(t, Initial, snap.State)
	require.Nil(t, snap.Generated)
	require.Zero(t, refs.Live())

	events := journal.Events()
	require.Len(t, events, 1)
	require.Equal(t, domain.OutcomeDiscarded, events[0].Outcome)
}

func TestControllerReplacePhotoReleasesPrevious(t *testing.T) {
	c, refs, _ := newTestController(t, &fakeTransformer{result: generated()})

	first, err := c.ChooseFile(source())
	require.NoError(t, err)
	second, err := c.ChooseFile(imagegen.SourceImage{Data: []byte("png"), MIMEType: "image/png"})
	require.NoError(t, err)

	_, ok := refs.Open(first.Source.Ref)
	require.False(t, ok)
	_, ok = refs.Open(second.Source.Ref)
	require.True(t, ok)
	require.Equal(t, 1, refs.Live())
}

func TestControllerInvalidFile(t *testing.T) {
	c, refs, _ := newTestController(t, &fakeTransformer{})

	snap, err := c.ChooseFile(imagegen.SourceImage{Data: []byte("%PDF"), MIMEType: "application/pdf"})
	require.NoError(t, err)
	require.Equal(t, Error, snap.State)
	require.Equal(t, "Please upload a valid image file.", snap.ErrorMessage)
	require.Zero(t, refs.Live())
}

func TestControllerCloseReleasesAndCancels(t *testing.T) {
	tr := &fakeTransformer{gate: make(chan struct{})}
	c, refs, journal := newTestController(t, tr)

	_, err := c.ChooseFile(source())
	require.NoError(t, err)
	_, err = c.ChooseDecade(domain.Decade2010s)
	require.NoError(t, err)

	c.Close()
	c.Wait()
	c.Close()

	require.Zero(t, refs.Live())
	_, err = c.ChooseFile(source())
	require.ErrorIs(t, err, ErrClosed)

	events := journal.Events()
	require.Len(t, events, 1)
	require.Equal(t, domain.OutcomeDiscarded, events[0].Outcome)
}

func TestControllerSnapshotIsACopy(t *testing.T) {
	c, _, _ := newTestController(t, &fakeTransformer{})
	_, err := c.ChooseFile(source())
	require.NoError(t, err)

	snap := c.Snapshot()
	snap.Source.Name = "changed"
	require.Equal(t, "me.jpg", c.Snapshot().Source.Name)
}

func TestControllerRecordsGeneratingSince(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := &fakeTransformer{gate: make(chan struct{})}
	c := NewController("s", Deps{Transformer: tr, Now: func() time.Time { return at }})
	defer func() {
		c.Close()
		c.Wait()
	}()

	_, err := c.ChooseFile(source())
	require.NoError(t, err)
	snap, err := c.ChooseDecade(domain.Decade1960s)
	require.NoError(t, err)
	require.Equal(t, at, snap.GeneratingSince)
}
