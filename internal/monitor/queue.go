package monitor

import (
	"sync"

	"github.com/rs/zerolog"
)

// Task is one deferred store update. Run owns its error handling; the
// queue never inspects outcomes.
type Task struct {
	ID  string
	Run func()
}

// UpdateQueue serializes store-update tasks: strictly FIFO, one at a
// time, regardless of how many goroutines enqueue concurrently. Draining
// stops when the queue empties and resumes on the next enqueue.
type UpdateQueue struct {
	mu       sync.Mutex
	pending  []Task
	draining bool
	log      zerolog.Logger
}

func NewUpdateQueue(log zerolog.Logger) *UpdateQueue {
	return &UpdateQueue{log: log}
}

func (q *UpdateQueue) Enqueue(task Task) {
	q.mu.Lock()
	q.pending = append(q.pending, task)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	go q.drain()
}

func (q *UpdateQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		task := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.log.Debug().Str("task", task.ID).Msg("running store update task")
		task.Run()
	}
}
