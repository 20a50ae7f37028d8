// Package notify defines where batch events go. Converters and the app layer
// only see Sink; the log file and the terminal are two implementations of it.
package notify

import (
	"sync"

	"github.com/nconklindev/sheetcsv/internal/types"
)

type Sink interface {
	Notify(ev types.Event)
}

// Fanout mirrors every event to each of its sinks in order.
type Fanout []Sink

func (f Fanout) Notify(ev types.Event) {
	for _, s := range f {
		if s != nil {
			s.Notify(ev)
		}
	}
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(types.Event) {}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

func (r *Recorder) Notify(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind types.EventKind) int {
	n := 0
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
