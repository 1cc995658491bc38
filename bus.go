// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

// Message is the fixed-width unsigned payload carried by bus channels.
type Message = uint32

// Bus owns a table of bounded channels and the broadcast waiter queue.
// A Bus and everything it owns belong to a single scheduler thread; no
// operation may be invoked concurrently from another goroutine.
type Bus struct {
	serial    Serial
	channels  []*channel
	broadcast waitQueue
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{serial: nextSerial()}
}

// Serial returns the serial number assigned to this bus.
func (b *Bus) Serial() Serial {
	return b.serial
}

// Close closes every still-open channel, then wakes any remaining
// broadcast waiters so they observe the empty table on their next turn.
func (b *Bus) Close() {
	for desc := range b.channels {
		if b.channels[desc] != nil {
			b.CloseChannel(desc)
		}
	}
	b.broadcast.wakeAll()
}

// OpenChannel creates a channel with the given capacity and returns its
// descriptor: the lowest empty slot, or a fresh slot appended to the table.
// The table never shrinks. Always succeeds with a non-negative descriptor.
func (b *Bus) OpenChannel(capacity uint64) int {
	for desc, slot := range b.channels {
		if slot == nil {
			b.channels[desc] = newChannel(capacity)
			return desc
		}
	}
	b.channels = append(b.channels, newChannel(capacity))
	return len(b.channels) - 1
}

// CloseChannel closes the channel named by desc. All parked senders, then
// all parked receivers, are woken before the slot is emptied; on their next
// turn they re-enter through the try-form, observe the empty slot, and
// fail with ErrNoChannel. Idempotent and silent on stale descriptors.
//
// Closing from inside a coroutine should go through the Close operation,
// which adds the rescheduling point that lets drained waiters leave before
// the closer continues.
func (b *Bus) CloseChannel(desc int) {
	ch := b.lookup(desc)
	if ch == nil {
		return
	}
	ch.senders.wakeAll()
	ch.receivers.wakeAll()
	b.channels[desc] = nil
}

// lookup bounds-checks desc and returns the slot's channel, if any.
func (b *Bus) lookup(desc int) *channel {
	if desc < 0 || desc >= len(b.channels) {
		return nil
	}
	return b.channels[desc]
}

// pushNotify appends m and wakes at most one parked receiver.
func (b *Bus) pushNotify(ch *channel, m Message) {
	ch.messages.PushBack(m)
	ch.receivers.wakeOne()
}

// popNotify removes the head message and wakes at most one parked sender.
// When no sender was parked, at most one broadcast waiter is woken instead:
// a parked broadcaster needs every channel to have space, so freed space on
// any channel is a reason for it to retry. A unicast push never wakes
// broadcast waiters.
func (b *Bus) popNotify(ch *channel) Message {
	m := ch.messages.PopFront()
	if !ch.senders.wakeOne() {
		b.broadcast.wakeOne()
	}
	return m
}

// TrySend appends m to the channel named by desc without suspending.
// A successful send wakes at most one parked receiver.
func (b *Bus) TrySend(desc int, m Message) error {
	ch := b.lookup(desc)
	if ch == nil {
		SetErrno(ErrNoChannel)
		return ErrNoChannel
	}
	if !ch.hasSpace() {
		SetErrno(ErrWouldBlock)
		return ErrWouldBlock
	}
	b.pushNotify(ch, m)
	return nil
}

// TryRecv removes and returns the head message of the channel named by
// desc without suspending.
func (b *Bus) TryRecv(desc int) (Message, error) {
	ch := b.lookup(desc)
	if ch == nil {
		SetErrno(ErrNoChannel)
		return 0, ErrNoChannel
	}
	if !ch.hasMessage() {
		SetErrno(ErrWouldBlock)
		return 0, ErrWouldBlock
	}
	return b.popNotify(ch), nil
}

// TryBroadcast enqueues m into every open channel, or into none.
// The table is walked twice in one cooperative turn: first to check that
// every open channel has space (any full channel fails the whole broadcast
// with ErrWouldBlock and no side effects), then to deliver in index order.
// An empty table fails with ErrNoChannel.
func (b *Bus) TryBroadcast(m Message) error {
	open := 0
	for _, ch := range b.channels {
		if ch == nil {
			continue
		}
		if !ch.hasSpace() {
			SetErrno(ErrWouldBlock)
			return ErrWouldBlock
		}
		open++
	}
	if open == 0 {
		SetErrno(ErrNoChannel)
		return ErrNoChannel
	}
	for _, ch := range b.channels {
		if ch != nil {
			b.pushNotify(ch, m)
		}
	}
	return nil
}

// TrySendV pushes messages from data while the channel has space,
// returning how many were pushed. Zero pushed from non-empty data is
// ErrWouldBlock; empty data is (0, nil).
func (b *Bus) TrySendV(desc int, data []Message) (int, error) {
	ch := b.lookup(desc)
	if ch == nil {
		SetErrno(ErrNoChannel)
		return 0, ErrNoChannel
	}
	n := 0
	for n < len(data) && ch.hasSpace() {
		b.pushNotify(ch, data[n])
		n++
	}
	if n == 0 && len(data) > 0 {
		SetErrno(ErrWouldBlock)
		return 0, ErrWouldBlock
	}
	return n, nil
}

// TryRecvV pops messages into out while the channel has any, returning how
// many were read. Zero read into non-empty out is ErrWouldBlock; empty out
// is (0, nil).
func (b *Bus) TryRecvV(desc int, out []Message) (int, error) {
	ch := b.lookup(desc)
	if ch == nil {
		SetErrno(ErrNoChannel)
		return 0, ErrNoChannel
	}
	n := 0
	for n < len(out) && ch.hasMessage() {
		out[n] = b.popNotify(ch)
		n++
	}
	if n == 0 && len(out) > 0 {
		SetErrno(ErrWouldBlock)
		return 0, ErrWouldBlock
	}
	return n, nil
}
