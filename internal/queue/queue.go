package queue

import (
	"sync"

	"bankcore/internal/core"
)

// Queue holds pending customer-service requests in strict submission order.
type Queue struct {
	mu      sync.Mutex
	pending []core.ServiceRequest
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends a request to the tail and returns the new queue length,
// which is the submitter's position.
func (q *Queue) Enqueue(req core.ServiceRequest) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, req)
	return len(q.pending)
}

// Peek returns the front request without removing it.
func (q *Queue) Peek() (core.ServiceRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return core.ServiceRequest{}, core.ErrEmptyQueue
	}
	return q.pending[0], nil
}

// Dequeue removes and returns the front request.
func (q *Queue) Dequeue() (core.ServiceRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return core.ServiceRequest{}, core.ErrEmptyQueue
	}
	req := q.pending[0]
	q.pending = q.pending[1:]
	return req, nil
}

// List returns a snapshot of all pending requests, front to back.
func (q *Queue) List() []core.ServiceRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]core.ServiceRequest, len(q.pending))
	copy(out, q.pending)
	return out
}

// Len reports the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
