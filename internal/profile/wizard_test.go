package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

type fakeStore struct {
	saves int
	err   error
}

func (s *fakeStore) SaveProfile(ctx context.Context, rec Record, role models.Role) error {
	s.saves++
	return s.err
}

type captureSink struct {
	infos  []string
	errors []string
}

func (s *captureSink) Info(msg string)  { s.infos = append(s.infos, msg) }
func (s *captureSink) Error(msg string) { s.errors = append(s.errors, msg) }

func newTestWizard(t *testing.T, store Store) *Wizard {
	t.Helper()
	return NewWizard(models.RoleSeekerTeamMember, Record{}, store, &captureSink{})
}

func TestWizardPreviousNoopAtStart(t *testing.T) {
	w := newTestWizard(t, &fakeStore{})

	w.Previous()
	assert.Equal(t, 0, w.Index())
}

func TestWizardSaveAndNextAdvances(t *testing.T) {
	store := &fakeStore{}
	w := newTestWizard(t, store)

	require.NoError(t, w.SaveAndNext(context.Background()))
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 1, store.saves)

	w.Previous()
	assert.Equal(t, 0, w.Index())
}

func TestWizardSaveFailureKeepsIndex(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	sink := &captureSink{}
	w := NewWizard(models.RoleSeekerTeamMember, Record{}, store, sink)

	err := w.SaveAndNext(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, w.Index())
	assert.False(t, w.Done())
	assert.Equal(t, []string{"Failed to save profile. Please try again."}, sink.errors)

	// The failure is recoverable: clear the fault and retry the same action.
	store.err = nil
	require.NoError(t, w.SaveAndNext(context.Background()))
	assert.Equal(t, 1, w.Index())
}

func TestWizardJumpTo(t *testing.T) {
	w := newTestWizard(t, &fakeStore{})
	last := len(w.Sections()) - 1

	require.NoError(t, w.JumpTo(last))
	assert.Equal(t, last, w.Index())

	require.NoError(t, w.JumpTo(0))
	assert.Equal(t, 0, w.Index())

	assert.ErrorIs(t, w.JumpTo(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.JumpTo(last+1), ErrIndexOutOfRange)
}

func TestWizardSkipDoesNotPersist(t *testing.T) {
	store := &fakeStore{}
	w := newTestWizard(t, store)

	require.NoError(t, w.Skip())
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 0, store.saves)
}

func TestWizardSkipOnLastSectionAbandons(t *testing.T) {
	w := newTestWizard(t, &fakeStore{})
	abandoned := false
	w.OnSkip = func() { abandoned = true }

	require.NoError(t, w.JumpTo(len(w.Sections())-1))
	require.NoError(t, w.Skip())

	assert.True(t, abandoned)
	assert.True(t, w.Done())
	assert.Equal(t, len(w.Sections())-1, w.Index(), "index must not overflow")

	assert.ErrorIs(t, w.Skip(), ErrWizardFinished)
}

func TestWizardSubmitOnlyOnLastSection(t *testing.T) {
	w := newTestWizard(t, &fakeStore{})

	assert.ErrorIs(t, w.Submit(context.Background()), ErrNotLastSection)
}

func TestWizardSubmitCompletes(t *testing.T) {
	store := &fakeStore{}
	w := newTestWizard(t, store)
	completed := false
	w.OnComplete = func() { completed = true }

	require.NoError(t, w.JumpTo(len(w.Sections())-1))
	require.NoError(t, w.Submit(context.Background()))

	assert.True(t, completed)
	assert.True(t, w.Done())
	assert.Equal(t, 1, store.saves)

	assert.ErrorIs(t, w.Submit(context.Background()), ErrWizardFinished)
	assert.ErrorIs(t, w.SaveAndNext(context.Background()), ErrWizardFinished)
	assert.ErrorIs(t, w.SetField("name", "x"), ErrWizardFinished)
}

func TestWizardSaveAndNextOnLastSectionSubmits(t *testing.T) {
	store := &fakeStore{}
	w := newTestWizard(t, store)
	completed := false
	w.OnComplete = func() { completed = true }

	require.NoError(t, w.JumpTo(len(w.Sections())-1))
	require.NoError(t, w.SaveAndNext(context.Background()))

	assert.True(t, completed)
	assert.True(t, w.Done())
}

// blockingStore parks SaveProfile until released, so the test can observe
// the in-flight state.
type blockingStore struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) SaveProfile(ctx context.Context, rec Record, role models.Role) error {
	close(s.entered)
	<-s.release
	return nil
}

func TestWizardDoubleClickGuard(t *testing.T) {
	store := &blockingStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	w := newTestWizard(t, store)

	firstDone := make(chan error, 1)
	go func() { firstDone <- w.SaveAndNext(context.Background()) }()

	<-store.entered
	assert.True(t, w.Saving())
	assert.ErrorIs(t, w.SaveAndNext(context.Background()), ErrSaveInFlight)
	assert.ErrorIs(t, w.Skip(), ErrSaveInFlight)

	close(store.release)
	require.NoError(t, <-firstDone)
	assert.False(t, w.Saving())
	assert.Equal(t, 1, w.Index())
}

func TestWizardSetFieldRecomputesStatus(t *testing.T) {
	w := newTestWizard(t, &fakeStore{})
	before := w.Status().OverallPercentage

	require.NoError(t, w.SetField("name", "Asha Verma"))
	after := w.Status().OverallPercentage

	assert.Greater(t, after, before)
}
