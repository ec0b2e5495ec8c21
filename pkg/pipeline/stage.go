package pipeline

import "sync"

// Stage is a step of a pipeline run.
type Stage string

const (
	StagePending   Stage = "pending"
	StageLoaded    Stage = "loaded"
	StageValidated Stage = "validated"
	StageRejected  Stage = "rejected"
	StageDelivered Stage = "delivered"
	StageFailed    Stage = "failed"
)

var transitions = map[Stage][]Stage{
	StagePending:   {StageLoaded, StageFailed},
	StageLoaded:    {StageValidated, StageRejected, StageFailed},
	StageValidated: {StageDelivered, StageFailed},
}

// Terminal reports whether no further transition leaves s.
func (s Stage) Terminal() bool {
	return len(transitions[s]) == 0
}

// Tracker holds the current stage of one run. It is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	current Stage
	history []Stage
}

// NewTracker returns a tracker in StagePending.
func NewTracker() *Tracker {
	return &Tracker{current: StagePending, history: []Stage{StagePending}}
}

func (t *Tracker) Current() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// History returns every stage visited, oldest first.
func (t *Tracker) History() []Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Stage, len(t.history))
	copy(out, t.history)
	return out
}

// CanMove reports whether the tracker may move to stage to.
func (t *Tracker) CanMove(to Stage) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return allowed(t.current, to)
}

// Move changes the current stage or returns a *TransitionError.
func (t *Tracker) Move(to Stage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !allowed(t.current, to) {
		return &TransitionError{From: t.current, To: to}
	}
	t.current = to
	t.history = append(t.history, to)
	return nil
}

func allowed(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
