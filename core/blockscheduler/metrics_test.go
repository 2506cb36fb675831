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
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

type gaugeTestForkView struct{}

func (gaugeTestForkView) Branch(common.Hash) ([]Block, error) { return nil, ErrUnknownBlock }
func (gaugeTestForkView) RefBlock(common.Hash) error          { return nil }

type gaugeTestStatusStore struct{}

func (gaugeTestStatusStore) Status(common.Hash) ValidityStatus { return Valid }

// The processing/pending gauges are process-global (registered once at
// package init), so this test must run to completion without t.Parallel()
// alongside any other test that touches a Scheduler's gauges.
func TestUpdateGaugesReflectsCardinality(t *testing.T) {
	s := New(gaugeTestForkView{}, gaugeTestStatusStore{})

	a := Block{BlockID: common.BytesToHash([]byte("gauge-A")), PreviousBlockID: NullPrevious}
	b := Block{BlockID: common.BytesToHash([]byte("gauge-B")), PreviousBlockID: a.BlockID, Number: 1}
	c1 := Block{BlockID: common.BytesToHash([]byte("gauge-C1")), PreviousBlockID: b.BlockID, Number: 2}
	c2 := Block{BlockID: common.BytesToHash([]byte("gauge-C2")), PreviousBlockID: b.BlockID, Number: 2}
	c3 := Block{BlockID: common.BytesToHash([]byte("gauge-C3")), PreviousBlockID: b.BlockID, Number: 2}

	s.Schedule([]Block{a})
	s.Schedule([]Block{b, c1, c2, c3})
	s.Done(a.BlockID, false)

	if got := blocksProcessingGauge.Snapshot().Value(); got != 1 {
		t.Fatalf("processing gauge = %d, want 1 (block B)", got)
	}
	if got := blocksPendingGauge.Snapshot().Value(); got != 3 {
		t.Fatalf("pending gauge = %d, want 3 (C1, C2, C3)", got)
	}
}
