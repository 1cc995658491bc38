// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"errors"

	"code.hybscloud.com/kont"
	"github.com/gammazero/deque"
)

// Scheduler is a single-threaded cooperative executor for bus protocols.
// Coroutines run in strict FIFO order off one ready queue; exactly one
// coroutine executes between any two suspension points. The scheduler
// never spawns goroutines and never blocks the calling goroutine.
type Scheduler struct {
	ready deque.Deque[*Coroutine]
	live  int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Coroutine is one cooperatively scheduled execution of a bus protocol.
// Its handle doubles as the waiter entry parked on channel and broadcast
// queues; the bus never inspects it beyond waking.
type Coroutine struct {
	sched   *Scheduler
	program kont.Expr[any]
	susp    *kont.Suspension[any]
	resumed kont.Resumed
	pending bool
	started bool
	done    bool
	value   any
	err     error
}

// Spawn enqueues protocol as a new coroutine at the tail of the ready
// queue. Nothing runs until Run; coroutines start in spawn order.
func Spawn[R any](s *Scheduler, protocol kont.Eff[R]) *Coroutine {
	return SpawnExpr(s, kont.Reify(protocol))
}

// SpawnExpr enqueues an Expr-world protocol as a new coroutine.
func SpawnExpr[R any](s *Scheduler, protocol kont.Expr[R]) *Coroutine {
	co := &Coroutine{
		sched:   s,
		program: kont.ExprMap(protocol, func(r R) any { return r }),
	}
	s.live++
	s.ready.PushBack(co)
	return co
}

// Run steps ready coroutines in FIFO order until none is runnable.
// Coroutines parked on a waiter queue stay parked across the return; a
// later push, pop, or close makes them runnable again and a further Run
// resumes them. Use Pending to detect parked work.
func (s *Scheduler) Run() {
	for s.ready.Len() > 0 {
		s.step(s.ready.PopFront())
	}
}

// Pending returns the number of spawned coroutines that have not finished.
// A non-zero value after Run means that many coroutines are parked.
func (s *Scheduler) Pending() int {
	return s.live
}

// step runs one coroutine until it parks, yields, or finishes.
func (s *Scheduler) step(co *Coroutine) {
	if !co.started {
		co.started = true
		result, susp := kont.StepExpr(co.program)
		if susp == nil {
			co.finish(result)
			return
		}
		co.susp = susp
	}
	if co.pending {
		co.pending = false
		if !s.resume(co, co.resumed) {
			return
		}
	}
	for {
		op := co.susp.Op()
		if _, ok := op.(Yield); ok {
			s.requeue(co, struct{}{})
			return
		}
		d, ok := op.(busDispatcher)
		if !ok {
			SetErrno(ErrNotImplemented)
			co.fail(ErrNotImplemented)
			return
		}
		v, err := d.DispatchBus()
		switch {
		case err == nil:
		case errors.Is(err, ErrWouldBlock):
			d.blockQueue().park(co)
			return
		case errors.Is(err, ErrNoChannel):
			co.fail(err)
			return
		default:
			SetErrno(ErrNotImplemented)
			co.fail(ErrNotImplemented)
			return
		}
		if _, ok := op.(Close); ok {
			// The close yield: the drained waiters take their turn and
			// re-observe the empty slot before the closer continues.
			s.requeue(co, v)
			return
		}
		if !s.resume(co, v) {
			return
		}
	}
}

// requeue parks co at the ready tail with a resume value to deliver on its
// next turn. Nothing past the suspended operation runs this turn.
func (s *Scheduler) requeue(co *Coroutine, v kont.Resumed) {
	co.resumed = v
	co.pending = true
	s.ready.PushBack(co)
}

// resume advances the suspension with v.
// Reports false when the coroutine completed.
func (s *Scheduler) resume(co *Coroutine, v kont.Resumed) bool {
	result, next := co.susp.Resume(v)
	if next == nil {
		co.finish(result)
		return false
	}
	co.susp = next
	return true
}

func (co *Coroutine) finish(v any) {
	co.value = v
	co.susp = nil
	co.done = true
	co.sched.live--
}

// fail finishes the coroutine with a terminal error, discarding the
// suspended continuation.
func (co *Coroutine) fail(err error) {
	co.susp.Discard()
	co.susp = nil
	co.err = err
	co.done = true
	co.sched.live--
}

// wake moves a parked coroutine to the tail of its scheduler's ready
// queue. Called by the bus wakeup protocol only.
func (co *Coroutine) wake() {
	co.sched.ready.PushBack(co)
}

// Done reports whether the coroutine has finished.
func (co *Coroutine) Done() bool {
	return co.done
}

// Err returns the coroutine's terminal error: ErrNoChannel when a blocking
// operation lost its channel, ErrNotImplemented when it performed an
// operation the scheduler does not handle or a dispatch failed with any
// other error, nil otherwise.
func (co *Coroutine) Err() error {
	return co.err
}

// Value returns the coroutine's untyped result. Use Result for the typed
// form.
func (co *Coroutine) Value() any {
	return co.value
}

// Result returns co's typed result. A coroutine that has not finished yet
// reports ErrWouldBlock.
func Result[R any](co *Coroutine) (R, error) {
	var zero R
	if !co.done {
		return zero, ErrWouldBlock
	}
	if co.err != nil {
		return zero, co.err
	}
	return co.value.(R), nil
}
