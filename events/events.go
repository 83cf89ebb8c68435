// Package events carries the structured notification stream that every
// protocol component publishes on each state transition. Off-chain
// consumers (indexers, monitors) subscribe by supplying an Emitter.
package events

import (
	"go.uber.org/zap"
)

// Emitter receives one notification per state transition. Implementations
// must not fail: emission is observational and never aborts the transition
// that produced it.
type Emitter interface {
	Emit(component, action string, fields ...zap.Field)
}

// nopEmitter discards all events.
type nopEmitter struct{}

func (nopEmitter) Emit(string, string, ...zap.Field) {}

// Nop returns an Emitter that discards everything.
func Nop() Emitter { return nopEmitter{} }

// Recorder is an Emitter that captures events in memory, for tests.
type Recorder struct {
	Events []Recorded
}

// Recorded is one captured event.
type Recorded struct {
	Component string
	Action    string
	Fields    []zap.Field
}

// Emit appends the event to the recorder.
func (r *Recorder) Emit(component, action string, fields ...zap.Field) {
	r.Events = append(r.Events, Recorded{Component: component, Action: action, Fields: fields})
}

// Last returns the most recently captured event, or nil if none.
func (r *Recorder) Last() *Recorded {
	if len(r.Events) == 0 {
		return nil
	}
	return &r.Events[len(r.Events)-1]
}

// Count returns the number of events captured for the given component/action.
func (r *Recorder) Count(component, action string) int {
	n := 0
	for _, e := range r.Events {
		if e.Component == component && e.Action == action {
			n++
		}
	}
	return n
}
