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

import "github.com/ethereum/go-ethereum/metrics"

var (
	blocksProcessingGauge = metrics.NewRegisteredGauge("blockscheduler/blocks/processing", nil)
	blocksPendingGauge    = metrics.NewRegisteredGauge("blockscheduler/blocks/pending", nil)

	cacheMissesCounter    = metrics.NewRegisteredCounter("blockscheduler/cachemisses", nil)
	invalidatedCounter    = metrics.NewRegisteredCounter("blockscheduler/invalidated", nil)
	duplicateAdmitCounter = metrics.NewRegisteredCounter("blockscheduler/duplicateadmits", nil)

	scheduleTimer = metrics.NewRegisteredTimer("blockscheduler/schedule", nil)
	doneTimer     = metrics.NewRegisteredTimer("blockscheduler/done", nil)
)

// updateGauges refreshes the two cardinality-bounded gauges from the current
// state. Must be called with the scheduler lock held: pending and processing
// are read without their own synchronization.
func updateGauges(pendingLen, processingLen int) {
	blocksPendingGauge.Update(int64(pendingLen))
	blocksProcessingGauge.Update(int64(processingLen))
}
