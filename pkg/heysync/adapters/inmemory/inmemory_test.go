package inmemory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/adapters/inmemory"
)

func TestRecorder(t *testing.T) {
	r := inmemory.NewRecorder()

	_, ok := r.Last()
	assert.False(t, ok)

	r.Publish("cheddar")
	r.Publish(heysync.Signal)

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []any{"cheddar", heysync.Signal}, r.Payloads())

	last, ok := r.Last()
	require.True(t, ok)
	assert.True(t, heysync.IsSignal(last))

	r.Reset()
	assert.Zero(t, r.Count())
}

func TestRecorder_Concurrent(t *testing.T) {
	r := inmemory.NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Publish(i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Count())
}

func TestQueue(t *testing.T) {
	q := inmemory.NewQueue(2)
	q.Publish("a")
	q.Publish(heysync.Payload("x", 7))
	q.Close()

	var got []any
	for payload := range q.C() {
		got = append(got, payload)
	}
	assert.Equal(t, []any{"a", []any{"x", 7}}, got)
}

func TestQueue_Unbuffered(t *testing.T) {
	q := inmemory.NewQueue(-1)

	done := make(chan any)
	go func() { done <- <-q.C() }()

	q.Publish(4)
	assert.Equal(t, 4, <-done)
}
