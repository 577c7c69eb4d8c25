package scan

import "sync"

// Outcome pairs a successfully decoded Entry with any error encountered
// producing it. Exactly one of the two is meaningful: a nil Err means Entry
// is valid; a non-nil Err means Entry is the zero value.
type Outcome struct {
	Entry Entry
	Err   error
}

// outcomeQueue is an unbounded multi-producer/single-consumer queue backed
// by a mutex and condition variable rather than a buffered channel, so that
// Push never blocks on backpressure — spec.md §5 requires sends to proceed
// even when the consumer is slow or has stopped pulling. A blocked Pop
// returns when an item is pushed or the queue is closed.
type outcomeQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Outcome
	closed bool
}

func newOutcomeQueue() *outcomeQueue {
	q := &outcomeQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues o and wakes one blocked consumer. Push after Close is a
// silent no-op: the producer goroutine may still be unwinding its recursive
// call stack when the consumer walks away.
func (q *outcomeQueue) Push(o Outcome) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, o)
	q.cond.Signal()
}

// Pop blocks until an item is available or the queue is closed. ok is false
// only once the queue is both closed and drained.
func (q *outcomeQueue) Pop() (Outcome, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return Outcome{}, false
	}
	o := q.items[0]
	q.items = q.items[1:]
	return o, true
}

// CloseSend marks the producer side done. Pending items already pushed are
// still delivered to Pop before it starts returning ok=false.
func (q *outcomeQueue) CloseSend() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// CloseRecv marks the consumer side gone: subsequent Push calls are dropped
// and a blocked Pop wakes up empty. This is what backs Iterator.Close and
// cooperative cancellation.
func (q *outcomeQueue) CloseRecv() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
	q.cond.Broadcast()
}

// sender is the producer-facing handle a Context holds. It reports whether the
// consumer is still listening, so Context.send can translate a dead
// consumer into a cascading channel error.
type sender struct {
	q *outcomeQueue
}

// send pushes o and reports whether the queue was already closed from the
// consumer side — true means the send effectively went nowhere.
func (s sender) send(o Outcome) bool {
	s.q.mu.Lock()
	closed := s.q.closed
	if !closed {
		s.q.items = append(s.q.items, o)
		s.q.cond.Signal()
	}
	s.q.mu.Unlock()
	return closed
}
