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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// The methods in this file all assume the Scheduler's lock is already held
// by the caller. They are unexported so that invariant can't be violated
// from outside the package; the exported methods in scheduler.go acquire the
// lock, and schedule recurses into itself directly during cache-miss
// recovery rather than re-locking.

// schedule is the recursive core of Schedule. It never acquires the lock
// itself and never updates the gauges; the public Schedule does both exactly
// once per call, including for recursive recovery sub-calls.
func (s *Scheduler) schedule(blocks []Block) []Block {
	var ready []Block
	for _, b := range blocks {
		if s.processing.Contains(b.BlockID) || s.pending.Contains(b.BlockID) {
			duplicateAdmitCounter.Inc(1)
			log.Debug("blockscheduler: duplicate admission ignored", "block", b.BlockID)
			continue
		}

		if s.processing.Contains(b.PreviousBlockID) || s.pending.Contains(b.PreviousBlockID) {
			s.addToPending(b)
			continue
		}

		if b.IsGenesis() {
			s.processing.Add(b.BlockID)
			ready = append(ready, b)
			// Deliberate early return: the rest of the batch is abandoned
			// and must be reissued by the caller. See DESIGN.md.
			return ready
		}

		switch status := s.resolveStatus(b.PreviousBlockID); status {
		case Valid:
			s.processing.Add(b.BlockID)
			ready = append(ready, b)

		case Invalid:
			s.processing.Add(b.BlockID)
			invalidatedCounter.Inc(1)
			s.emitInvalid(b.BlockID)

		case Missing, InValidation:
			log.Warn("blockscheduler: predecessor not actionable, dropping block from batch",
				"block", b.BlockID, "previous", b.PreviousBlockID, "status", status)

		case Unknown:
			cacheMissesCounter.Inc(1)
			for _, r := range s.recoverFromCacheMiss(b) {
				if !containsBlockID(ready, r.BlockID) {
					ready = append(ready, r)
				}
			}
		}
	}
	return ready
}

// recoverFromCacheMiss implements the cache-miss recovery path of Schedule:
// b's predecessor reads Unknown, so b is parked in pending and the ancestor
// walk is consulted to find the oldest actionable ancestor.
func (s *Scheduler) recoverFromCacheMiss(b Block) []Block {
	branch, err := s.forkView.Branch(b.PreviousBlockID)
	if err != nil {
		log.Warn("blockscheduler: fork view branch lookup failed during cache-miss recovery",
			"block", b.PreviousBlockID, "err", err)
		s.addToPending(b)
		return nil
	}

	s.addToPending(b)

	var recovery []Block
	for _, a := range branch {
		if s.pending.Contains(a.BlockID) || s.processing.Contains(a.BlockID) {
			break
		}
		// Raw cache check only: the blockstore fallback applies when
		// dispatching against an immediate predecessor (resolveStatus), never
		// while scanning the walk. An ancestor whose verdict aged out of the
		// cache is walked through and rescheduled like any other.
		if s.statusStore.Status(a.BlockID) != Unknown {
			break
		}
		if err := s.forkView.RefBlock(a.BlockID); err != nil {
			log.Warn("blockscheduler: ref block failed during cache-miss recovery",
				"block", a.BlockID, "err", err)
		}
		recovery = append(recovery, a)
	}

	for i, j := 0, len(recovery)-1; i < j; i, j = i+1, j-1 {
		recovery[i], recovery[j] = recovery[j], recovery[i]
	}

	return s.schedule(recovery)
}

// addToPending enrolls b in pending and its descendantsByPrev bucket,
// maintaining invariant 3: at most one entry per block id across all
// buckets.
func (s *Scheduler) addToPending(b Block) {
	if s.pending.Contains(b.BlockID) {
		return
	}
	s.pending.Add(b.BlockID)

	bucket := s.descendantsByPrev[b.PreviousBlockID]
	for _, existing := range bucket {
		if existing.BlockID == b.BlockID {
			return
		}
	}
	s.descendantsByPrev[b.PreviousBlockID] = append(bucket, b)
}

// resolveStatus queries the Status Store, upgrading an Unknown verdict to
// Valid via the optional blockstore fallback when the block turns out to
// already be committed.
func (s *Scheduler) resolveStatus(id common.Hash) ValidityStatus {
	status := s.statusStore.Status(id)
	if status != Unknown || s.blockstoreFallback == nil {
		return status
	}

	blk, err := s.blockstoreFallback.GetFromBlockstore(id)
	if err != nil {
		log.Warn("blockscheduler: blockstore fallback lookup failed", "block", id, "err", err)
		return Unknown
	}
	if blk == nil {
		return Unknown
	}
	log.Debug("blockscheduler: status upgraded via blockstore fallback", "block", id)
	return Valid
}

// emitInvalid reports a synchronously-detected invalid block on the results
// sink. Both failure modes here are unrecoverable: the scheduler has no way
// to re-derive an invalid verdict it fails to report.
func (s *Scheduler) emitInvalid(id common.Hash) {
	if s.resultsSink == nil {
		log.Crit("blockscheduler: invalid block admitted with no results sink configured",
			"block", id, "err", errResultsSinkRequired)
		return
	}
	if err := s.resultsSink.Send(ValidationResult{BlockID: id, Status: Invalid}); err != nil {
		log.Crit("blockscheduler: results sink send failed", "block", id, "err", err)
	}
}

func containsBlockID(blocks []Block, id common.Hash) bool {
	for _, b := range blocks {
		if b.BlockID == id {
			return true
		}
	}
	return false
}
