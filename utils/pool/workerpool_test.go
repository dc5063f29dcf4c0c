/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool(t *testing.T) {
	wp := &WorkerPool{MaxWorkersCount: 200000}
	wp.Start()
	defer wp.Stop()

	var n int32
	var wg sync.WaitGroup
	for i := 0; i < 10000; i++ {
		wg.Add(1)
		if err := wp.Submit(func() {
			defer wg.Done()
			atomic.AddInt32(&n, 1)
		}); err != nil {
			t.Fatalf("cannot submit function #%d", i)
		}
	}
	wg.Wait()

	if atomic.LoadInt32(&n) != 10000 {
		t.Fatalf("unexpected number of served functions: %d. Expecting %d", atomic.LoadInt32(&n), 10000)
	}
}

func TestWorkerPoolAfterRelease(t *testing.T) {
	wp := &WorkerPool{MaxWorkersCount: 10, MaxIdleWorkerDuration: time.Second * 10}
	wp.Start()
	wp.Release()

	done := make(chan struct{})
	if err := wp.Submit(func() { close(done) }); err != nil {
		t.Fatalf("cannot submit after release: %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("function not served")
	}
}

func TestWorkerPoolLimit(t *testing.T) {
	wp := &WorkerPool{MaxWorkersCount: 1}
	wp.Start()
	defer wp.Stop()

	block := make(chan struct{})
	started := make(chan struct{})
	if err := wp.Submit(func() {
		close(started)
		<-block
	}); err != nil {
		t.Fatalf("cannot submit: %v", err)
	}
	<-started
	if err := wp.Submit(func() {}); err != ErrNoIdleWorkers {
		t.Fatalf("expected ErrNoIdleWorkers, got %v", err)
	}
	if c := wp.WorkersCount(); c != 1 {
		t.Fatalf("unexpected workers count: %d", c)
	}
	close(block)
}

func TestWorkerPoolWithDoubleStart(*testing.T) {
	wp := &WorkerPool{MaxWorkersCount: 200000, MaxIdleWorkerDuration: time.Second * 10}
	wp.Start()
	wp.Start()
	defer wp.Stop()
}
