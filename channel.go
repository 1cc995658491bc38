// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"fortio.org/safecast"
	"github.com/gammazero/deque"
)

// channel is one slot in a bus table: a bounded message FIFO plus the two
// waiter queues. The zero capacity is stored verbatim; every send on such a
// channel blocks until the channel is closed.
type channel struct {
	capacity  uint64
	messages  deque.Deque[Message]
	senders   waitQueue
	receivers waitQueue
}

func newChannel(capacity uint64) *channel {
	return &channel{capacity: capacity}
}

func (ch *channel) lenU64() uint64 {
	n := ch.messages.Len()
	if n <= 0 {
		return 0
	}
	u, err := safecast.Conv[uint64](n)
	if err != nil {
		return 0
	}
	return u
}

// hasSpace reports whether the message queue is below capacity.
func (ch *channel) hasSpace() bool {
	return ch.lenU64() < ch.capacity
}

// hasMessage reports whether the message queue is non-empty.
func (ch *channel) hasMessage() bool {
	return ch.messages.Len() > 0
}
