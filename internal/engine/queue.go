package engine

import "github.com/roach88/streamtv/internal/model"

// pending is one decoded action waiting to run.
type pending struct {
	action model.Action
	op     Op
}

// readyQueue is the FIFO of decoded actions for one run. It is drained on
// the run's goroutine only.
type readyQueue struct {
	items []pending
}

func newReadyQueue(capacity int) *readyQueue {
	return &readyQueue{items: make([]pending, 0, capacity)}
}

// Enqueue appends p at the back.
func (q *readyQueue) Enqueue(p pending) {
	q.items = append(q.items, p)
}

// TryDequeue removes and returns the front item.
func (q *readyQueue) TryDequeue() (pending, bool) {
	if len(q.items) == 0 {
		return pending{}, false
	}
	p := q.items[0]
	// Clear the slot so the backing array does not pin the action.
	q.items[0] = pending{}
	q.items = q.items[1:]
	return p, true
}

// Len returns the number of queued items.
func (q *readyQueue) Len() int {
	return len(q.items)
}
