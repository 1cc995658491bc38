// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corobus provides an in-process message bus of bounded FIFO
// channels for cooperatively scheduled coroutines on
// [code.hybscloud.com/kont].
//
// A [Bus] owns a table of bounded channels addressed by small integer
// descriptors. Each channel carries fixed-width unsigned messages and two
// FIFO waiter queues: senders parked on "full" and receivers parked on
// "empty". The bus additionally supports broadcast (one message into every
// open channel, all-or-nothing) and vectorised send/receive.
//
// # Architecture
//
//   - Try-forms: non-suspending [Bus] methods ([Bus.TrySend], [Bus.TryRecv],
//     [Bus.TryBroadcast], [Bus.TrySendV], [Bus.TryRecvV]) returning
//     [code.hybscloud.com/iox.ErrWouldBlock] on backpressure and
//     [ErrNoChannel] on stale descriptors.
//   - Blocking forms: effect operations ([Send], [Recv], [Broadcast],
//     [SendV], [RecvV], [Close], [Yield]) evaluated by a [Scheduler]. A
//     dispatch that would block parks the coroutine at the tail of the
//     operation's waiter queue; the matching push, pop, or close wakes it
//     and the operation is retried.
//   - Wakeup protocol: a push wakes at most one receiver; a pop wakes at
//     most one sender, falling back to at most one broadcast waiter. Close
//     drains both waiter queues before the slot is released.
//   - Error Handling: failing try-forms record the process-wide errno slot
//     ([Errno]). A terminal [ErrNoChannel] on a blocking form finishes the
//     coroutine with that error ([Coroutine.Err]).
//
// # API Topologies
//
//   - Bus surface: [New], [Bus.OpenChannel], [Bus.CloseChannel],
//     [Bus.Close], and the try-forms.
//   - Protocols: [SendThen], [RecvBind], [BroadcastThen], [SendVBind],
//     [RecvVBind], [CloseThen], [YieldThen], [Loop].
//   - Scheduling: [NewScheduler], [Spawn], [Scheduler.Run],
//     [Scheduler.Pending], [Result].
//   - Ingress: [Inlet] bridges one external producer goroutine into the
//     single-threaded bus world over a bounded lock-free SPSC queue
//     ([code.hybscloud.com/lfq]); [Pump] forwards inlet messages into a
//     channel.
//
// # Example
//
//	bus := corobus.New()
//	desc := bus.OpenChannel(1)
//	sched := corobus.NewScheduler()
//	corobus.Spawn(sched, corobus.SendThen(bus, desc, 7, kont.Pure(struct{}{})))
//	rx := corobus.Spawn(sched, corobus.RecvBind(bus, desc, func(m corobus.Message) kont.Eff[corobus.Message] {
//		return kont.Pure(m)
//	}))
//	sched.Run()
//	m, _ := corobus.Result[corobus.Message](rx) // m == 7
package corobus
