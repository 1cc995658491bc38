// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// Inlet bridges one external producer goroutine into the single-threaded
// bus world. Transport is a bounded lock-free SPSC queue: the producer
// side (Put, PutWait, Close) belongs to exactly one goroutine, the
// consumer side (TryTake, Pump) to the scheduler thread. The bus itself
// is never touched from the producer side.
type Inlet struct {
	q      lfq.SPSC[Message]
	closed atomix.Uint32
}

// NewInlet creates an inlet whose queue holds up to capacity messages.
func NewInlet(capacity int) *Inlet {
	in := &Inlet{}
	in.q.Init(capacity)
	return in
}

// Put enqueues m without waiting.
// Non-blocking: returns iox.ErrWouldBlock when the queue is full.
func (in *Inlet) Put(m Message) error {
	return in.q.Enqueue(&m)
}

// PutWait blocks the producer goroutine until the inlet accepts m,
// backing off on iox.ErrWouldBlock with iox.Backoff.
func (in *Inlet) PutWait(m Message) {
	var bo iox.Backoff
	for in.q.Enqueue(&m) != nil {
		bo.Wait()
	}
}

// Close marks the inlet closed. The producer must not Put afterwards; the
// consumer drains the remaining messages and then observes the close.
func (in *Inlet) Close() {
	in.closed.Add(1)
}

// Closed reports whether Close was called.
func (in *Inlet) Closed() bool {
	return in.closed.Load() > 0
}

// TryTake dequeues one message.
// Non-blocking: returns iox.ErrWouldBlock when the queue is empty.
func (in *Inlet) TryTake() (Message, error) {
	return in.q.Dequeue()
}

// Pump forwards inlet messages into the channel named by desc until the
// inlet is closed and drained, resolving with the number of messages
// forwarded. While the inlet is open and empty the protocol yields and
// polls again, so a scheduler running only a Pump spins until the
// producer makes progress.
func Pump(bus *Bus, in *Inlet, desc int) kont.Eff[int] {
	return Loop(0, func(n int) kont.Eff[kont.Either[int, int]] {
		m, err := in.TryTake()
		if err == nil {
			return SendThen(bus, desc, m, kont.Pure(kont.Left[int, int](n+1)))
		}
		if in.Closed() {
			// A message enqueued just before the close flag may become
			// visible after the first empty dequeue; take once more
			// before finishing.
			if m, err = in.TryTake(); err == nil {
				return SendThen(bus, desc, m, kont.Pure(kont.Left[int, int](n+1)))
			}
			return kont.Pure(kont.Right[int](n))
		}
		return YieldThen(kont.Pure(kont.Left[int, int](n)))
	})
}
