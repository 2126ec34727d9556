package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendQueueFIFO(t *testing.T) {
	q := newSendQueue()

	for i := 0; i < 100; i++ {
		q.enqueue(fmt.Sprintf("line %d\r\n", i))
	}

	for i := 0; i < 100; i++ {
		line, ok := q.dequeue()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("line %d\r\n", i), line)
	}
}

func TestSendQueueCloseDrains(t *testing.T) {
	q := newSendQueue()

	q.enqueue("first\r\n")
	q.enqueue("second\r\n")
	q.close()

	// Lines enqueued before close are still delivered.
	line, ok := q.dequeue()
	require.True(t, ok)
	assert.Equal(t, "first\r\n", line)

	line, ok = q.dequeue()
	require.True(t, ok)
	assert.Equal(t, "second\r\n", line)

	_, ok = q.dequeue()
	assert.False(t, ok)

	// Lines enqueued after close are dropped.
	q.enqueue("late\r\n")
	_, ok = q.dequeue()
	assert.False(t, ok)

	// Closing again is harmless.
	q.close()
}

func TestSendQueueWakesConsumer(t *testing.T) {
	q := newSendQueue()

	got := make(chan string, 1)
	go func() {
		line, ok := q.dequeue()
		if ok {
			got <- line
		}
	}()

	q.enqueue("wake\r\n")

	select {
	case line := <-got:
		assert.Equal(t, "wake\r\n", line)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not wake")
	}
}

// Many producers, one consumer. Each producer's lines must come out in the
// order that producer enqueued them.
func TestSendQueueConcurrentProducers(t *testing.T) {
	const producers = 10
	const linesEach = 100

	q := newSendQueue()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < linesEach; i++ {
				q.enqueue(fmt.Sprintf("%d %d\r\n", p, i))
			}
		}(p)
	}

	wg.Wait()
	q.close()

	next := make([]int, producers)
	total := 0
	for {
		line, ok := q.dequeue()
		if !ok {
			break
		}
		total++

		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		p, err := strconv.Atoi(fields[0])
		require.NoError(t, err)
		i, err := strconv.Atoi(fields[1])
		require.NoError(t, err)

		assert.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}

	assert.Equal(t, producers*linesEach, total)
}
