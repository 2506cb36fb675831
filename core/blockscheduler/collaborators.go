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

import "github.com/ethereum/go-ethereum/common"

// ForkView is the authoritative fork-tree store. The scheduler only reads
// from it: ancestor walks for cache-miss recovery, and residency pins to keep
// an ancestor from being evicted while recovery is in flight. Implementations
// must be safe for concurrent use; the scheduler calls them while holding its
// own lock, so they must never call back into the scheduler.
type ForkView interface {
	// Branch returns the ancestor walk starting at blockID, oldest-last
	// (i.e. branch[0] is blockID's own record, branch[1] its parent, and so
	// on toward the root). An unknown blockID is an error, not an empty
	// slice.
	Branch(blockID common.Hash) ([]Block, error)

	// RefBlock pins blockID resident so it cannot be evicted while the
	// scheduler is using it for recovery. The scheduler logs and continues
	// on error; a failed pin does not abort recovery.
	RefBlock(blockID common.Hash) error
}

// StatusStore reports the cached validity of a block. It is a pure query:
// looking a block up must have no side effects the scheduler needs to
// account for.
type StatusStore interface {
	Status(blockID common.Hash) ValidityStatus
}

// BlockstoreFallback upgrades an Unknown verdict to Valid when the block has
// already been committed to the canonical chain but its status-store cache
// entry aged out. This mirrors the original design's COMMIT_STORE lookup.
type BlockstoreFallback interface {
	GetFromBlockstore(blockID common.Hash) (*Block, error)
}

// ValidationResult is the record the scheduler emits on the Results Channel.
// The scheduler only ever constructs one with Status set to Invalid and the
// execution fields left at their zero value; a real validator worker would
// populate ExecutionResults and NumTransactions for results it reports
// itself.
type ValidationResult struct {
	BlockID          common.Hash
	ExecutionResults []byte
	NumTransactions  int
	Status           ValidityStatus
}

// ResultsSink is where the scheduler reports blocks it determines are
// invalid before a validator worker ever sees them. A send failure here is
// fatal: the scheduler has no way to recover an invalid verdict it cannot
// report (see errors.go).
type ResultsSink interface {
	Send(result ValidationResult) error
}
