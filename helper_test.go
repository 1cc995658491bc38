// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus_test

import (
	"testing"

	"code.hybscloud.com/corobus"
	"code.hybscloud.com/kont"
)

// done returns the unit protocol terminator.
func done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}

// mustValue returns the typed result of a finished coroutine.
func mustValue[R any](t *testing.T, co *corobus.Coroutine) R {
	t.Helper()
	v, err := corobus.Result[R](co)
	if err != nil {
		t.Fatalf("coroutine failed: %v", err)
	}
	return v
}

// sendSeq sends msgs in order on desc, blocking on backpressure.
func sendSeq(bus *corobus.Bus, desc int, msgs []corobus.Message) kont.Eff[struct{}] {
	return corobus.Loop(msgs, func(rest []corobus.Message) kont.Eff[kont.Either[[]corobus.Message, struct{}]] {
		if len(rest) == 0 {
			return kont.Pure(kont.Right[[]corobus.Message](struct{}{}))
		}
		return corobus.SendThen(bus, desc, rest[0],
			kont.Pure(kont.Left[[]corobus.Message, struct{}](rest[1:])),
		)
	})
}

type recvState struct {
	left int
	acc  []corobus.Message
}

// recvN receives exactly n messages from desc in arrival order.
func recvN(bus *corobus.Bus, desc, n int) kont.Eff[[]corobus.Message] {
	return corobus.Loop(recvState{left: n}, func(s recvState) kont.Eff[kont.Either[recvState, []corobus.Message]] {
		if s.left == 0 {
			return kont.Pure(kont.Right[recvState](s.acc))
		}
		return corobus.RecvBind(bus, desc, func(m corobus.Message) kont.Eff[kont.Either[recvState, []corobus.Message]] {
			next := recvState{left: s.left - 1, acc: append(s.acc, m)}
			return kont.Pure(kont.Left[recvState, []corobus.Message](next))
		})
	})
}

func equalMessages(a, b []corobus.Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
