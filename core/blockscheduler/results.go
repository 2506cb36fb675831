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

	"github.com/ethereum/go-ethereum/event"
)

// ChannelResultsSink is the reference ResultsSink: a mutex-guarded buffer
// drained by a background goroutine into a delivery channel, plus an
// event.Feed so in-process subscribers (the daemon's chain-controller loop,
// tests) can observe results without competing with channel consumers for
// the same values. Send never blocks the scheduler on a slow consumer.
type ChannelResultsSink struct {
	out chan ValidationResult
	mu  sync.Mutex
	buf []ValidationResult
	cv  *sync.Cond

	feed event.Feed

	closed bool
	quit   chan struct{}
	done   chan struct{}
}

// NewChannelResultsSink creates a sink whose delivery channel has the given
// buffer capacity. A capacity of 0 is legal; the internal unbounded staging
// buffer absorbs bursts regardless of how small the delivery channel is.
func NewChannelResultsSink(channelCapacity int) *ChannelResultsSink {
	s := &ChannelResultsSink{
		out:  make(chan ValidationResult, channelCapacity),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.cv = sync.NewCond(&s.mu)
	go s.drain()
	return s
}

// Results returns the channel on which emitted ValidationResults are
// delivered. Closed when the sink is closed.
func (s *ChannelResultsSink) Results() <-chan ValidationResult {
	return s.out
}

// Subscribe registers an event.Feed subscriber for emitted results, in
// addition to (not instead of) delivery on the Results channel.
func (s *ChannelResultsSink) Subscribe(ch chan<- ValidationResult) event.Subscription {
	return s.feed.Subscribe(ch)
}

// Send appends result to the internal buffer and returns immediately. It
// returns ErrResultsSinkClosed if the sink has already been closed, which
// the scheduler treats as fatal (see emitInvalid).
func (s *ChannelResultsSink) Send(result ValidationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrResultsSinkClosed
	}
	s.buf = append(s.buf, result)
	s.cv.Signal()
	return nil
}

// Close stops the drain goroutine and closes the Results channel. Staged
// results not yet picked up by a consumer are dropped. Any Send after Close
// returns ErrResultsSinkClosed.
func (s *ChannelResultsSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cv.Signal()
	s.mu.Unlock()

	close(s.quit)
	<-s.done
	close(s.out)
}

func (s *ChannelResultsSink) drain() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.buf) == 0 && !s.closed {
			s.cv.Wait()
		}
		if len(s.buf) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		next := s.buf[0]
		s.buf = s.buf[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
			s.feed.Send(next)
		case <-s.quit:
			return
		}
	}
}
