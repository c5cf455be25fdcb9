// Package diagnostics keeps a bounded, append-only trail of purchase
// attempts and structured events. It exists for postmortem inspection
// only; nothing here feeds back into correctness decisions.
package diagnostics

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultAttemptCap = 20
	DefaultEventCap   = 50
)

// Event is one structured log entry tied to an attempt
type Event struct {
	Time      time.Time `json:"time"`
	AttemptID string    `json:"attempt_id"`
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
}

// Attempt is an explicit handle for one purchase attempt. Callers obtain
// it from StartAttempt and thread it through the orchestration; there is
// no ambient "current attempt" pointer, so concurrent attempts stay
// independent.
type Attempt struct {
	ID        string    `json:"attempt_id"`
	Number    int       `json:"attempt_number"`
	Context   string    `json:"context"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`

	rec   *Recorder
	once  sync.Once
	ended bool
}

// Record appends a structured event for this attempt
func (a *Attempt) Record(name, detail string) {
	if a.rec == nil {
		return
	}
	a.rec.record(Event{
		Time:      time.Now(),
		AttemptID: a.ID,
		Name:      name,
		Detail:    detail,
	})
}

// End closes the attempt with its outcome. Only the first call has any
// effect, so every code path may safely end the attempt it owns.
func (a *Attempt) End(success bool, err error) {
	a.once.Do(func() {
		if a.rec != nil {
			a.rec.mu.Lock()
			a.EndedAt = time.Now()
			a.Success = success
			if err != nil {
				a.Error = err.Error()
			}
			a.ended = true
			a.rec.mu.Unlock()
			a.rec.persist(a)
			return
		}
		a.EndedAt = time.Now()
		a.Success = success
		if err != nil {
			a.Error = err.Error()
		}
		a.ended = true
	})
}

// Ended reports whether the attempt has been closed
func (a *Attempt) Ended() bool {
	if a.rec != nil {
		a.rec.mu.Lock()
		defer a.rec.mu.Unlock()
	}
	return a.ended
}

// Recorder holds the bounded attempt and event buffers. Both buffers are
// lossy: once a cap is reached the oldest entries are evicted.
type Recorder struct {
	mu         sync.Mutex
	attempts   []*Attempt
	events     []Event
	attemptCap int
	eventCap   int
	counter    int
	sink       io.Writer
}

// NewRecorder creates a recorder with the given buffer caps. Non-positive
// caps fall back to the defaults.
func NewRecorder(attemptCap, eventCap int) *Recorder {
	if attemptCap <= 0 {
		attemptCap = DefaultAttemptCap
	}
	if eventCap <= 0 {
		eventCap = DefaultEventCap
	}
	return &Recorder{
		attemptCap: attemptCap,
		eventCap:   eventCap,
	}
}

// WithSink sets an advisory persistence writer. Ended attempts are
// appended as JSON lines; write errors are ignored.
func (r *Recorder) WithSink(w io.Writer) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = w
	return r
}

// StartAttempt opens a new attempt for the given context (e.g.
// "session-purchase") and returns its handle.
func (r *Recorder) StartAttempt(context string) *Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	attempt := &Attempt{
		ID:        uuid.NewString(),
		Number:    r.counter,
		Context:   context,
		StartedAt: time.Now(),
		rec:       r,
	}

	r.attempts = append(r.attempts, attempt)
	if len(r.attempts) > r.attemptCap {
		r.attempts = r.attempts[len(r.attempts)-r.attemptCap:]
	}
	return attempt
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	if len(r.events) > r.eventCap {
		r.events = r.events[len(r.events)-r.eventCap:]
	}
}

func (r *Recorder) persist(a *Attempt) {
	r.mu.Lock()
	sink := r.sink
	line, err := json.Marshal(a)
	r.mu.Unlock()
	if sink == nil || err != nil {
		return
	}
	line = append(line, '\n')
	_, _ = sink.Write(line)
}

// Attempts returns a copy of the retained attempt records, oldest first
func (r *Recorder) Attempts() []Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Attempt, 0, len(r.attempts))
	for _, a := range r.attempts {
		out = append(out, Attempt{
			ID:        a.ID,
			Number:    a.Number,
			Context:   a.Context,
			StartedAt: a.StartedAt,
			EndedAt:   a.EndedAt,
			Success:   a.Success,
			Error:     a.Error,
		})
	}
	return out
}

// Events returns a copy of the retained events, oldest first
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
