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

// Package blockscheduler admits candidate blocks for validation. It tracks
// which blocks are waiting on a predecessor, which are currently dispatched,
// and propagates invalidity down a fork tree without ever validating a block
// before its predecessor's status is known.
package blockscheduler

import "github.com/ethereum/go-ethereum/common"

// NullPrevious is the sentinel previous-block id identifying a chain root.
// A block whose PreviousBlockID equals NullPrevious is admitted unconditionally.
var NullPrevious = common.Hash{}

// Block is the minimal view of a candidate block the scheduler needs: its own
// identity and the identity of the block it extends. Everything else about a
// block (its body, its header, its signature) belongs to the Fork View
// collaborator and is opaque here.
type Block struct {
	BlockID         common.Hash
	PreviousBlockID common.Hash
	Number          uint64
}

// IsGenesis reports whether b is rooted directly at the sentinel predecessor.
func (b Block) IsGenesis() bool {
	return b.PreviousBlockID == NullPrevious
}
