package main

import "sync"

// sendQueue is the outbound line queue for one client connection.
//
// It is an unbounded FIFO with any number of producers and a single
// consumer, the connection's writer goroutine. Producers never block:
// dispatchers enqueue a line and move on, so fanning a message out to N
// recipients never stalls on a slow socket.
type sendQueue struct {
	mu     sync.Mutex
	wake   *sync.Cond
	lines  []string
	closed bool
}

func newSendQueue() *sendQueue {
	q := &sendQueue{}
	q.wake = sync.NewCond(&q.mu)
	return q
}

// enqueue appends one line to the queue. Lines enqueued after close are
// silently dropped, so sending to a dead connection is harmless.
func (q *sendQueue) enqueue(line string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.lines = append(q.lines, line)
	q.wake.Signal()
}

// dequeue removes and returns the oldest line. It blocks until a line is
// available or the queue is closed. Once the queue is closed, any lines
// enqueued before the close are still returned; after that the second
// return value is false.
func (q *sendQueue) dequeue() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.lines) == 0 && !q.closed {
		q.wake.Wait()
	}

	if len(q.lines) == 0 {
		return "", false
	}

	line := q.lines[0]
	q.lines = q.lines[1:]
	return line, true
}

// close marks the queue finished and wakes the consumer. Idempotent.
func (q *sendQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.wake.Broadcast()
}
