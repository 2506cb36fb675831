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

package blockscheduler

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Scheduler is the single gated state machine described in the package doc:
// it decides which candidate blocks may be dispatched for validation, and
// propagates invalidity through a fork tree without ever validating a block
// ahead of its predecessor. A Scheduler holds one exclusive lock over its
// entire state; there is no reentrancy between its public methods, and
// cache-miss recovery recurses internally rather than re-acquiring the lock.
type Scheduler struct {
	mu sync.Mutex

	pending           mapset.Set[common.Hash]
	processing        mapset.Set[common.Hash]
	descendantsByPrev map[common.Hash][]Block

	forkView           ForkView
	statusStore        StatusStore
	blockstoreFallback BlockstoreFallback
	resultsSink        ResultsSink
}

// New creates a Scheduler backed by the given Fork View and Status Store.
// A results sink must be attached with SetResultsSink before any block with
// a cached-Invalid predecessor is scheduled; a nil blockstore fallback is
// accepted and simply disables the Unknown-to-Valid upgrade.
func New(forkView ForkView, statusStore StatusStore) *Scheduler {
	return &Scheduler{
		pending:           mapset.NewThreadUnsafeSet[common.Hash](),
		processing:        mapset.NewThreadUnsafeSet[common.Hash](),
		descendantsByPrev: make(map[common.Hash][]Block),
		forkView:          forkView,
		statusStore:       statusStore,
	}
}

// SetResultsSink attaches the collaborator that receives synchronously
// detected invalid-block results. Safe to call at any time; takes effect for
// subsequent Schedule calls.
func (s *Scheduler) SetResultsSink(sink ResultsSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultsSink = sink
}

// SetBlockstoreFallback attaches the optional collaborator used to upgrade
// an Unknown verdict to Valid when a block has already been committed but
// its Status Store entry aged out.
func (s *Scheduler) SetBlockstoreFallback(fallback BlockstoreFallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockstoreFallback = fallback
}

// Schedule admits as many of blocks as are immediately dispatchable and
// returns them. Blocks waiting on a predecessor are parked internally and
// surface later from Schedule or Done once their predecessor resolves.
//
// A block whose predecessor is the sentinel NullPrevious is admitted and
// returned immediately, abandoning the remainder of the input slice — this
// is a deliberate, inherited quirk; see DESIGN.md.
func (s *Scheduler) Schedule(blocks []Block) []Block {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	defer scheduleTimer.UpdateSince(start)

	ready := s.schedule(blocks)
	updateGauges(s.pending.Cardinality(), s.processing.Cardinality())
	return ready
}

// Done reports that blockID has finished validation. If markDescendantsInvalid
// is false, children previously parked on blockID are promoted to processing
// and returned as ready. If true, children are released from pending but
// deliberately not promoted; the caller must InsertIntoProcessing and Done
// each of them in turn to continue propagating invalidity down the fork tree.
//
// Calling Done for a blockID not currently in processing is a precondition
// violation; the call is logged and otherwise ignored.
func (s *Scheduler) Done(blockID common.Hash, markDescendantsInvalid bool) []Block {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	defer doneTimer.UpdateSince(start)

	if !s.processing.Contains(blockID) {
		log.Error("blockscheduler: done called for block not in processing", "block", blockID)
		return nil
	}

	s.processing.Remove(blockID)
	children := s.descendantsByPrev[blockID]
	delete(s.descendantsByPrev, blockID)

	for _, child := range children {
		s.pending.Remove(child.BlockID)
	}

	var ready []Block
	if !markDescendantsInvalid {
		for _, child := range children {
			s.processing.Add(child.BlockID)
		}
		ready = children
	}

	updateGauges(s.pending.Cardinality(), s.processing.Cardinality())
	return ready
}

// InsertIntoProcessing forces blockID into the processing set without
// dispatch. It exists for the invalidity-propagation pass: a chain
// controller walking a subtree of a now-invalid block needs to call Done on
// descendants the scheduler never admitted as ready, and Done requires its
// precondition (blockID in processing) to hold first.
func (s *Scheduler) InsertIntoProcessing(blockID common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing.Add(blockID)
	updateGauges(s.pending.Cardinality(), s.processing.Cardinality())
}

// Contains reports whether blockID is known to the scheduler, either parked
// in pending or dispatched in processing.
func (s *Scheduler) Contains(blockID common.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.processing.Contains(blockID) || s.pending.Contains(blockID)
}

// Descendants returns a snapshot of the blocks currently parked in pending
// waiting on blockID, without mutating any state. Done with
// markDescendantsInvalid=true drains this same bucket but does not return
// it; a caller walking an invalid subtree calls Descendants first to learn
// which blocks to InsertIntoProcessing and Done(..., true) next.
func (s *Scheduler) Descendants(blockID common.Hash) []Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.descendantsByPrev[blockID]
	out := make([]Block, len(bucket))
	copy(out, bucket)
	return out
}
