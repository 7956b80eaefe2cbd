// Package queue provides the unbounded FIFO that carries table names from
// the discoverer to the generator workers.
//
// Push never blocks. Pop blocks until a task is available or the context is
// done. Any number of goroutines may push and pop concurrently; each pushed
// task is returned by exactly one Pop.
package queue

import (
	"context"
	"sync"

	"github.com/koustreak/tablegen/internal/errs"
)

// Task is either a table name or the end-of-work sentinel.
type Task struct {
	table    string
	sentinel bool
}

// Table returns a task for the named table.
func Table(name string) Task {
	return Task{table: name}
}

// Sentinel returns the task that tells one consumer no more tables follow.
// It never compares equal to a table task, whatever the table is called.
func Sentinel() Task {
	return Task{sentinel: true}
}

// IsSentinel reports whether t is the end-of-work marker.
func (t Task) IsSentinel() bool { return t.sentinel }

// Name returns the table name; empty for a sentinel.
func (t Task) Name() string { return t.table }

func (t Task) String() string {
	if t.sentinel {
		return "<sentinel>"
	}
	return t.table
}

// Queue is an unbounded, blocking, multi-producer multi-consumer FIFO.
type Queue struct {
	mu    sync.Mutex
	items []Task
	// ready holds one token while items is non-empty.
	ready chan struct{}

	pushed int
	popped int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends t to the tail of the queue.
func (q *Queue) Push(t Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.pushed++
	q.signalLocked()
	q.mu.Unlock()
}

// Pop removes and returns the head of the queue, waiting while it is empty.
// It returns an ErrKindInterrupted error when ctx is done first.
func (q *Queue) Pop(ctx context.Context) (Task, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			t := q.items[0]
			q.items[0] = Task{}
			q.items = q.items[1:]
			q.popped++
			q.signalLocked()
			q.mu.Unlock()
			return t, nil
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			return Task{}, errs.Wrap(errs.ErrKindInterrupted, "queue read interrupted", ctx.Err())
		}
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats returns how many tasks were pushed and popped so far.
func (q *Queue) Stats() (pushed, popped int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pushed, q.popped
}

// signalLocked leaves a token in ready while work is pending so that the
// next waiter wakes up. Callers hold q.mu.
func (q *Queue) signalLocked() {
	if len(q.items) == 0 {
		return
	}
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
