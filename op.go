// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/kont"
)

// busDispatcher is the structural interface for bus effect operations.
// DispatchBus is non-blocking: it returns ErrWouldBlock when the operation
// cannot make progress, in which case the scheduler parks the coroutine on
// blockQueue and retries the same operation after a wake. Any other error
// is terminal for the coroutine.
type busDispatcher interface {
	DispatchBus() (kont.Resumed, error)
	blockQueue() *waitQueue
}

// Send is the effect operation for sending one message.
// Perform(Send{Bus: b, Channel: d, Value: v}) blocks while the channel is
// full and resolves once v is enqueued.
type Send struct {
	kont.Phantom[struct{}]
	Bus     *Bus
	Channel int
	Value   Message
}

// DispatchBus handles Send via the non-suspending try-form.
func (s Send) DispatchBus() (kont.Resumed, error) {
	if err := s.Bus.TrySend(s.Channel, s.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// blockQueue returns the channel's sender queue. Called only right after a
// would-block dispatch, so the channel still exists: nothing can close it
// between the two calls on a single scheduler thread.
func (s Send) blockQueue() *waitQueue {
	return &s.Bus.lookup(s.Channel).senders
}

// Recv is the effect operation for receiving one message.
// Perform(Recv{Bus: b, Channel: d}) blocks while the channel is empty and
// resolves with the head message.
type Recv struct {
	kont.Phantom[Message]
	Bus     *Bus
	Channel int
}

// DispatchBus handles Recv via the non-suspending try-form.
func (r Recv) DispatchBus() (kont.Resumed, error) {
	m, err := r.Bus.TryRecv(r.Channel)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r Recv) blockQueue() *waitQueue {
	return &r.Bus.lookup(r.Channel).receivers
}

// Broadcast is the effect operation for publishing one message to every
// open channel. Blocks while any open channel is full; delivery is
// all-or-nothing within one cooperative turn.
type Broadcast struct {
	kont.Phantom[struct{}]
	Bus   *Bus
	Value Message
}

// DispatchBus handles Broadcast via the non-suspending try-form.
func (o Broadcast) DispatchBus() (kont.Resumed, error) {
	if err := o.Bus.TryBroadcast(o.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// blockQueue returns the bus-level broadcast waiter queue. A parked
// broadcaster is woken by a pop that found no parked sender.
func (o Broadcast) blockQueue() *waitQueue {
	return &o.Bus.broadcast
}

// SendV is the effect operation for a vectorised send. Blocks only while
// nothing at all can be pushed; resolves with the count of the first
// non-empty push (1..len(Data)), or 0 for empty Data.
type SendV struct {
	kont.Phantom[int]
	Bus     *Bus
	Channel int
	Data    []Message
}

// DispatchBus handles SendV via the non-suspending try-form.
func (s SendV) DispatchBus() (kont.Resumed, error) {
	n, err := s.Bus.TrySendV(s.Channel, s.Data)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s SendV) blockQueue() *waitQueue {
	return &s.Bus.lookup(s.Channel).senders
}

// RecvV is the effect operation for a vectorised receive of up to Max
// messages. Blocks only while the channel is empty; resolves with the
// messages of the first non-empty drain (1..Max of them), or none for
// Max <= 0.
type RecvV struct {
	kont.Phantom[[]Message]
	Bus     *Bus
	Channel int
	Max     int
}

// DispatchBus handles RecvV via the non-suspending try-form.
func (r RecvV) DispatchBus() (kont.Resumed, error) {
	out := make([]Message, max(r.Max, 0))
	n, err := r.Bus.TryRecvV(r.Channel, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

func (r RecvV) blockQueue() *waitQueue {
	return &r.Bus.lookup(r.Channel).receivers
}

// Close is the effect operation for closing a channel. It never blocks.
// The scheduler reschedules the closing coroutine once after dispatch, so
// the drained waiters re-observe the empty slot before the closer runs on.
type Close struct {
	kont.Phantom[struct{}]
	Bus     *Bus
	Channel int
}

// DispatchBus handles Close. Infallible; stale descriptors are a no-op.
func (c Close) DispatchBus() (kont.Resumed, error) {
	c.Bus.CloseChannel(c.Channel)
	return struct{}{}, nil
}

func (c Close) blockQueue() *waitQueue {
	return nil
}

// Yield is the effect operation offering a rescheduling point: the
// coroutine moves to the tail of the ready queue and continues on its
// next turn.
type Yield struct {
	kont.Phantom[struct{}]
}
