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

// Package executor runs listener callbacks off the transport's I/O
// goroutines so that a slow consumer cannot stall the connection.
//
// The pool grows without bound and keeps no idle workers: a worker
// goroutine exists only while it has work. Per-listener ordering is
// provided by Queue, which runs its tasks strictly in submission order
// and never concurrently with each other.
package executor

import (
	"sync"

	"go.uber.org/zap"
)

// Pool spawns panic-safe workers for callback execution.
type Pool struct {
	logger *zap.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// New returns a pool that logs with the given logger.
func New(logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{logger: logger}
}

// Go runs task on its own worker. A panic escaping the task is logged
// and never crashes the pool. Tasks submitted after StopNow are dropped.
func (p *Pool) Go(task func()) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.logger.Debug("dropping task submitted after executor shutdown")
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.run(task)
	}()
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("executor task panicked",
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	task()
}

// Stop rejects further tasks and blocks until every started task has
// returned.
func (p *Pool) Stop() {
	p.StopNow()
	p.wg.Wait()
}

// StopNow rejects all further tasks immediately. Queued but unstarted
// work is dropped; tasks already running are left to finish on their own.
func (p *Pool) StopNow() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}

// Wait blocks until every started task has returned. Intended for tests.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// Queue executes its tasks one at a time in submission order, on pool
// workers. A queue holds a worker only while it has pending tasks.
type Queue struct {
	pool *Pool

	mu      sync.Mutex
	tasks   []func()
	running bool
}

// NewQueue returns an empty serial queue backed by the pool.
func (p *Pool) NewQueue() *Queue {
	return &Queue{pool: p}
}

// Push appends task to the queue, starting a worker if none is draining
// it.
func (q *Queue) Push(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	q.pool.Go(q.drain)
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 || q.pool.isStopped() {
			q.tasks = nil
			q.running = false
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		q.pool.run(task)
	}
}
