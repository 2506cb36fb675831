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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gluwa/validator-scheduler/core/blockscheduler"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := NewRunner(&Config{
		DataDir:               t.TempDir(),
		StatusHotCacheBytes:   1 << 20,
		ResultsBufferSize:     16,
		WorkerCount:           2,
		WorkerValidationDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		if err := r.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}
	})
	return r
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func testBlock(id, prev string, num uint64) blockscheduler.Block {
	b := blockscheduler.Block{BlockID: common.BytesToHash([]byte(id)), Number: num}
	if prev != "" {
		b.PreviousBlockID = common.BytesToHash([]byte(prev))
	}
	return b
}

// A three-block chain submitted across two batches flows through the worker
// pool: each block ends up durably Valid and fully drained from the scheduler.
func TestRunnerValidatesChain(t *testing.T) {
	r := testRunner(t)

	a := testBlock("A", "", 0)
	b := testBlock("B", "A", 1)
	c := testBlock("C", "B", 2)
	r.Put(a, b, c)

	r.Submit([]blockscheduler.Block{a})
	r.Submit([]blockscheduler.Block{b, c})

	waitFor(t, "chain validation", func() bool {
		return r.statusStore.Status(c.BlockID) == blockscheduler.Valid
	})
	waitFor(t, "scheduler drain", func() bool {
		return !r.scheduler.Contains(a.BlockID) &&
			!r.scheduler.Contains(b.BlockID) &&
			!r.scheduler.Contains(c.BlockID)
	})
}

// A block whose predecessor is already known Invalid never reaches a worker;
// the propagation pass marks it and its parked descendants Invalid and drains
// them from the scheduler.
func TestRunnerPropagatesInvalidity(t *testing.T) {
	r := testRunner(t)

	a := testBlock("A", "", 0)
	b := testBlock("B", "A", 1)
	c := testBlock("C", "B", 2)
	r.Put(a, b, c)
	r.statusStore.SetStatus(a.BlockID, blockscheduler.Invalid)

	r.Submit([]blockscheduler.Block{b, c})

	waitFor(t, "invalid propagation", func() bool {
		return r.statusStore.Status(b.BlockID) == blockscheduler.Invalid &&
			r.statusStore.Status(c.BlockID) == blockscheduler.Invalid
	})
	waitFor(t, "invalid subtree drain", func() bool {
		return !r.scheduler.Contains(b.BlockID) && !r.scheduler.Contains(c.BlockID)
	})
}
