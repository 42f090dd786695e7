// Package inmemory provides process-local channels for tests and examples.
package inmemory

import (
	"sync"

	"github.com/fotap/heysync/pkg/heysync"
)

// Recorder is a thread-safe channel that keeps every payload it receives.
type Recorder struct {
	mu       sync.Mutex
	payloads []any
}

var _ heysync.Channel = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Publish(payload any) {
	r.mu.Lock()
	r.payloads = append(r.payloads, payload)
	r.mu.Unlock()
}

// Payloads returns a copy of the payloads received so far, oldest first.
func (r *Recorder) Payloads() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.payloads...)
}

// Count returns the number of payloads received.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

// Last returns the most recent payload.
func (r *Recorder) Last() (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return nil, false
	}
	return r.payloads[len(r.payloads)-1], true
}

// Reset forgets all payloads.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.payloads = nil
	r.mu.Unlock()
}

// Queue forwards payloads into a Go channel. Publish blocks while the
// buffer is full; that is the only backpressure it applies.
type Queue struct {
	ch chan any
}

var _ heysync.Channel = (*Queue)(nil)

// NewQueue creates a queue with the given buffer size.
func NewQueue(buffer int) *Queue {
	if buffer < 0 {
		buffer = 0
	}
	return &Queue{ch: make(chan any, buffer)}
}

func (q *Queue) Publish(payload any) {
	q.ch <- payload
}

// C is the receive side of the queue.
func (q *Queue) C() <-chan any {
	return q.ch
}

// Close closes the receive side. Publish must not be called afterwards.
func (q *Queue) Close() {
	close(q.ch)
}
