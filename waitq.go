// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import "github.com/gammazero/deque"

// waitQueue is a strict FIFO of parked coroutine handles. The bus stores a
// handle only while its coroutine is suspended and never inspects it beyond
// waking; an entry leaves the queue exactly once, via wakeOne or wakeAll.
type waitQueue struct {
	q deque.Deque[*Coroutine]
}

// park appends co at the tail.
func (w *waitQueue) park(co *Coroutine) {
	w.q.PushBack(co)
}

// wakeOne pops the head waiter and marks it runnable.
// Reports whether a waiter was woken.
func (w *waitQueue) wakeOne() bool {
	if w.q.Len() == 0 {
		return false
	}
	w.q.PopFront().wake()
	return true
}

// wakeAll wakes every parked waiter in FIFO order, draining the queue.
func (w *waitQueue) wakeAll() {
	for w.wakeOne() {
	}
}

func (w *waitQueue) len() int {
	return w.q.Len()
}
