package editor

// SaveState is the user-visible persistence status.
type SaveState string

const (
	StateSaved   SaveState = "saved"
	StateUnsaved SaveState = "unsaved"
	StateSaving  SaveState = "saving"
	StateError   SaveState = "error"
)

// DirtyTracker tracks whether in-memory content diverges from the last
// saved document. The saved-to-unsaved edge fires onDirty exactly once;
// further mutations while already unsaved stay silent, so the UI is not
// re-notified on every keystroke.
type DirtyTracker struct {
	state   SaveState
	dirty   bool
	onDirty func()
}

func NewDirtyTracker(onDirty func()) *DirtyTracker {
	return &DirtyTracker{state: StateSaved, onDirty: onDirty}
}

func (t *DirtyTracker) State() SaveState { return t.state }
func (t *DirtyTracker) IsDirty() bool    { return t.dirty }

// MarkDirty records divergence from the saved document.
func (t *DirtyTracker) MarkDirty() {
	wasClean := !t.dirty
	t.dirty = true
	if t.state != StateSaving {
		t.state = StateUnsaved
	}
	if wasClean && t.onDirty != nil {
		t.onDirty()
	}
}

// BeginSave moves to the saving state. It reports false when a save is
// already in flight, so a second attempt cannot start concurrently.
func (t *DirtyTracker) BeginSave() bool {
	if t.state == StateSaving {
		return false
	}
	t.state = StateSaving
	return true
}

// FinishSave ends the in-flight attempt. Success clears the dirty flag,
// including for edits made while the save was in flight; those live in
// the tree and go out with the next save. Failure keeps the flag set so
// the user can retry without losing edits.
func (t *DirtyTracker) FinishSave(err error) {
	if err != nil {
		t.state = StateError
		return
	}
	t.state = StateSaved
	t.dirty = false
}

// Discard resets to a clean state after the user confirms throwing
// away in-memory edits.
func (t *DirtyTracker) Discard() {
	t.state = StateSaved
	t.dirty = false
}
