// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/gluwa/validator-scheduler/core/blockscheduler"
	"github.com/gluwa/validator-scheduler/core/blockstore"
)

// Runner plays the role of the chain controller well enough to exercise the
// scheduler end-to-end: it owns the Scheduler and its reference
// collaborators, a pool of synthetic validator workers, and the
// invalidity-propagation pass that drains the results sink.
type Runner struct {
	cfg *Config

	scheduler   *blockscheduler.Scheduler
	forkView    *blockstore.MemoryForkView
	statusStore *blockstore.CachingStatusStore
	sink        *blockscheduler.ChannelResultsSink

	workQueue chan blockscheduler.Block

	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewRunner wires a Scheduler to its reference Fork View and Status Store
// and opens the durable status backend under cfg.DataDir.
func NewRunner(cfg *Config) (*Runner, error) {
	statusStore, err := blockstore.OpenCachingStatusStore(filepath.Join(cfg.DataDir, "statusdb"), int(cfg.StatusHotCacheBytes))
	if err != nil {
		return nil, fmt.Errorf("open status store: %w", err)
	}

	forkView := blockstore.NewMemoryForkView()
	sink := blockscheduler.NewChannelResultsSink(cfg.ResultsBufferSize)

	scheduler := blockscheduler.New(forkView, statusStore)
	scheduler.SetResultsSink(sink)
	scheduler.SetBlockstoreFallback(statusStore)

	return &Runner{
		cfg:         cfg,
		scheduler:   scheduler,
		forkView:    forkView,
		statusStore: statusStore,
		sink:        sink,
		workQueue:   make(chan blockscheduler.Block, cfg.WorkerCount*4),
		stopCh:      make(chan struct{}),
	}, nil
}

// Start launches the worker pool and the invalidity-propagation loop.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("already running")
	}
	r.running = true

	for i := 0; i < r.cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.propagateInvalid()

	return nil
}

// Stop halts the worker pool, the propagation loop, and closes the
// scheduler's collaborators.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	close(r.stopCh)
	r.wg.Wait()
	r.running = false

	r.sink.Close()
	return r.statusStore.Close()
}

// Put registers blocks with the Fork View so they can participate in
// cache-miss recovery ancestor walks, independent of whether they are
// scheduled yet.
func (r *Runner) Put(blocks ...blockscheduler.Block) {
	r.forkView.Put(blocks...)
}

// Submit schedules blocks and enqueues whatever comes back ready for a
// synthetic validator worker to pick up.
func (r *Runner) Submit(blocks []blockscheduler.Block) {
	ready := r.scheduler.Schedule(blocks)
	daemonBlocksDiscoveredTotal.Inc(int64(len(blocks)))
	r.enqueue(ready)
}

func (r *Runner) enqueue(blocks []blockscheduler.Block) {
	for _, b := range blocks {
		select {
		case r.workQueue <- b:
			daemonWorkerQueueDepth.Update(int64(len(r.workQueue)))
		case <-r.stopCh:
			return
		}
	}
}

// worker simulates validation: wait out the configured delay, record a
// Valid verdict, and report completion to the scheduler.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		case b := <-r.workQueue:
			r.validate(b)
		}
	}
}

func (r *Runner) validate(b blockscheduler.Block) {
	start := time.Now()

	select {
	case <-time.After(r.cfg.WorkerValidationDelay):
	case <-r.stopCh:
		return
	}

	r.statusStore.SetStatus(b.BlockID, blockscheduler.Valid)
	daemonValidationLatency.UpdateSince(start)
	daemonBlocksValidatedTotal.Inc(1)

	ready := r.scheduler.Done(b.BlockID, false)
	log.Debug("blockschedulerd: validated block", "block", b.BlockID, "promoted", len(ready))
	r.enqueue(ready)
}

// propagateInvalid drains the results sink and walks every invalid block's
// subtree, marking each descendant invalid in turn. A block reported here is
// already in processing (the scheduler admits it there synchronously), so
// the walk starts directly from Done rather than InsertIntoProcessing.
func (r *Runner) propagateInvalid() {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		case result, ok := <-r.sink.Results():
			if !ok {
				return
			}
			daemonBlocksInvalidTotal.Inc(1)
			r.statusStore.SetStatus(result.BlockID, blockscheduler.Invalid)
			r.invalidateSubtree(result.BlockID)
		}
	}
}

func (r *Runner) invalidateSubtree(blockID common.Hash) {
	children := r.scheduler.Descendants(blockID)
	r.scheduler.Done(blockID, true)

	for _, child := range children {
		log.Info("blockschedulerd: propagating invalidation", "block", child.BlockID, "previous", blockID)
		r.statusStore.SetStatus(child.BlockID, blockscheduler.Invalid)
		r.scheduler.InsertIntoProcessing(child.BlockID)
		r.invalidateSubtree(child.BlockID)
	}
}
