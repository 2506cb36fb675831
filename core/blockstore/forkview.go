// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package blockstore provides reference implementations of the Fork View and
// Status Store collaborators the scheduler package depends on.
package blockstore

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gluwa/validator-scheduler/core/blockscheduler"
)

// MemoryForkView is an in-memory block DAG keyed by block id. Branch walks
// PreviousBlockID pointers toward the root the same way a chain manager
// walks parent hashes to assemble an ancestor list; RefBlock pins a block
// resident with a simple reference count so cache-miss recovery cannot race
// an eviction that hasn't been modeled here (there is no eviction in this
// reference store, but real Fork View implementations would have one).
type MemoryForkView struct {
	mu     sync.RWMutex
	blocks map[common.Hash]*forkViewEntry
}

type forkViewEntry struct {
	block blockscheduler.Block
	refs  int
}

// NewMemoryForkView creates an empty Fork View.
func NewMemoryForkView() *MemoryForkView {
	return &MemoryForkView{blocks: make(map[common.Hash]*forkViewEntry)}
}

// Put inserts blocks into the DAG. A block id already present is left
// unchanged; re-inserting the same id with different fields is a caller
// error this reference store does not detect.
func (v *MemoryForkView) Put(blocks ...blockscheduler.Block) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, b := range blocks {
		if _, ok := v.blocks[b.BlockID]; ok {
			continue
		}
		v.blocks[b.BlockID] = &forkViewEntry{block: b}
	}
}

// Branch returns blockID's own record followed by its ancestors, walking
// PreviousBlockID until it reaches the sentinel NullPrevious or a block this
// store has never seen. blockID itself must be known or Branch fails.
func (v *MemoryForkView) Branch(blockID common.Hash) ([]blockscheduler.Block, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	entry, ok := v.blocks[blockID]
	if !ok {
		return nil, blockscheduler.ErrUnknownBlock
	}

	var branch []blockscheduler.Block
	cur := entry.block
	for {
		branch = append(branch, cur)
		if cur.PreviousBlockID == blockscheduler.NullPrevious {
			break
		}
		next, ok := v.blocks[cur.PreviousBlockID]
		if !ok {
			break
		}
		cur = next.block
	}
	return branch, nil
}

// RefBlock increments blockID's residency pin. Returns ErrUnknownBlock if the
// block was never Put; the scheduler logs and continues on this error rather
// than aborting recovery.
func (v *MemoryForkView) RefBlock(blockID common.Hash) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.blocks[blockID]
	if !ok {
		return blockscheduler.ErrUnknownBlock
	}
	entry.refs++
	return nil
}

// RefCount reports the current pin count for blockID, for tests that assert
// cache-miss recovery actually pinned the ancestors it walked.
func (v *MemoryForkView) RefCount(blockID common.Hash) int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	entry, ok := v.blocks[blockID]
	if !ok {
		return 0
	}
	return entry.refs
}
