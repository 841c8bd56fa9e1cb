package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

var (
	ErrSaveInFlight    = errors.New("a save is already in flight")
	ErrNotLastSection  = errors.New("submit is only available on the last section")
	ErrIndexOutOfRange = errors.New("section index out of range")
	ErrWizardFinished  = errors.New("wizard already finished")
)

// Store persists the partial record at each save-and-next step and at final
// submission. Implementations are injected so the state machine tests
// without a database.
type Store interface {
	SaveProfile(ctx context.Context, rec Record, role models.Role) error
}

// NotificationSink receives the user-facing messages the wizard surfaces.
// Persistence failures become recoverable errors here, never panics.
type NotificationSink interface {
	Info(msg string)
	Error(msg string)
}

// Wizard drives a linear multi-section profile form. It owns the mutable
// record; the completion status is recomputed from scratch on every edit via
// the pure Calculate.
//
// currentSectionIndex is not a strict linear gate: every section is directly
// reachable through JumpTo, matching the section tab bar. Visited checkmarks
// are a display concern of the caller.
type Wizard struct {
	role     models.Role
	sections []Section
	store    Store
	sink     NotificationSink

	// OnComplete fires after a successful Submit; OnSkip fires when the
	// last section is skipped (wizard abandonment).
	OnComplete func()
	OnSkip     func()

	mu     sync.Mutex
	rec    Record
	idx    int
	saving bool
	done   bool
	status CompletionStatus
}

func NewWizard(role models.Role, rec Record, store Store, sink NotificationSink) *Wizard {
	if rec == nil {
		rec = Record{}
	}
	if sink == nil {
		sink = noopSink{}
	}
	return &Wizard{
		role:     role,
		sections: SectionsFor(role),
		store:    store,
		sink:     sink,
		rec:      rec,
		status:   Calculate(rec, role),
	}
}

func (w *Wizard) Sections() []Section { return w.sections }

func (w *Wizard) Index() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idx
}

func (w *Wizard) Status() CompletionStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Wizard) Record() Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rec
}

func (w *Wizard) Saving() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saving
}

func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// IsLast reports whether the wizard sits on the final section, where the
// Next action is replaced by Submit.
func (w *Wizard) IsLast() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idx == len(w.sections)-1
}

// SetField mutates one field and recomputes the completion status.
func (w *Wizard) SetField(path string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrWizardFinished
	}
	if err := Set(w.rec, path, value); err != nil {
		return err
	}
	w.status = Calculate(w.rec, w.role)
	return nil
}

// Previous steps back one section; a no-op at index 0.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.idx > 0 {
		w.idx--
	}
}

// JumpTo moves directly to any valid section, regardless of the current
// index.
func (w *Wizard) JumpTo(k int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if k < 0 || k >= len(w.sections) {
		return ErrIndexOutOfRange
	}
	w.idx = k
	return nil
}

// SaveAndNext persists the partial record, then advances. On persistence
// failure the index does not move and the error is surfaced through the
// sink; the action stays retryable. On the last section it behaves as
// Submit, mirroring the button that replaces itself.
func (w *Wizard) SaveAndNext(ctx context.Context) error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrWizardFinished
	}
	if w.idx == len(w.sections)-1 {
		w.mu.Unlock()
		return w.Submit(ctx)
	}
	if err := w.beginSaveLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.mu.Unlock()

	err := w.store.SaveProfile(ctx, w.rec, w.role)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.saving = false
	if err != nil {
		w.sink.Error("Failed to save profile. Please try again.")
		return err
	}
	w.idx++
	return nil
}

// Skip advances without validating the skipped section and without
// persisting. Skipping the last section abandons the wizard: OnSkip fires
// and the machine is finished, the index never overflows.
func (w *Wizard) Skip() error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrWizardFinished
	}
	if w.saving {
		w.mu.Unlock()
		return ErrSaveInFlight
	}
	if w.idx < len(w.sections)-1 {
		w.idx++
		w.mu.Unlock()
		return nil
	}
	w.done = true
	cb := w.OnSkip
	w.mu.Unlock()
	if cb != nil {
		cb()
	}
	return nil
}

// Submit persists the full record from the last section. On success
// OnComplete fires and the wizard is finished; on failure the state is
// unchanged and the error is surfaced.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrWizardFinished
	}
	if w.idx != len(w.sections)-1 {
		w.mu.Unlock()
		return ErrNotLastSection
	}
	if err := w.beginSaveLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.mu.Unlock()

	err := w.store.SaveProfile(ctx, w.rec, w.role)

	w.mu.Lock()
	w.saving = false
	if err != nil {
		w.mu.Unlock()
		w.sink.Error("Failed to save profile. Please try again.")
		return err
	}
	w.done = true
	cb := w.OnComplete
	w.mu.Unlock()
	if cb != nil {
		cb()
	}
	return nil
}

// beginSaveLocked marks a save in flight; callers hold w.mu. Only one
// persistence call may be outstanding, which is what disables the
// Next/Submit/Skip buttons against rapid double-clicks.
func (w *Wizard) beginSaveLocked() error {
	if w.saving {
		return ErrSaveInFlight
	}
	w.saving = true
	return nil
}

type noopSink struct{}

func (noopSink) Info(string)  {}
func (noopSink) Error(string) {}
