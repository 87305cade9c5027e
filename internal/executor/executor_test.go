// Copyright (c) 2026 The OpenQuery Authors.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package executor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGoRunsTasks(t *testing.T) {
	pool := New(zap.NewNop())

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		pool.Go(func() {
			defer wg.Done()
			count.Inc()
		})
	}
	wg.Wait()
	assert.Equal(t, int32(50), count.Load())
}

func TestPanicIsLoggedNotPropagated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pool := New(zap.New(core))

	pool.Go(func() { panic("listener exploded") })
	pool.Wait()

	entries := logs.FilterMessage("executor task panicked").All()
	require.Len(t, entries, 1)

	// The pool must stay usable after a panic.
	done := make(chan struct{})
	pool.Go(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool stopped executing after a panic")
	}
}

func TestStopNowDropsNewTasks(t *testing.T) {
	pool := New(zap.NewNop())
	pool.StopNow()

	ran := make(chan struct{})
	pool.Go(func() { close(ran) })

	select {
	case <-ran:
		t.Fatal("task ran after StopNow")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQueuePreservesOrder(t *testing.T) {
	pool := New(zap.NewNop())
	queue := pool.NewQueue()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		queue.Push(func() {
			defer wg.Done()
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	wg.Wait()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v, "tasks ran out of order")
	}
}

func TestQueueSurvivesPanickingTask(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pool := New(zap.New(core))
	queue := pool.NewQueue()

	done := make(chan struct{})
	queue.Push(func() { panic("first task") })
	queue.Push(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queue stalled after a panicking task")
	}
	assert.Equal(t, 1, logs.FilterMessage("executor task panicked").Len())
}
