// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/kont"
)

// SendThen sends v on the channel named by desc and then continues with
// next. Fuses Perform(Send{...}) + Then.
func SendThen[B any](bus *Bus, desc int, v Message, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send{Bus: bus, Channel: desc, Value: v}), next)
}

// RecvBind receives one message from the channel named by desc and passes
// it to f. Fuses Perform(Recv{...}) + Bind.
func RecvBind[B any](bus *Bus, desc int, f func(Message) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv{Bus: bus, Channel: desc}), f)
}

// BroadcastThen publishes v to every open channel and then continues with
// next. Fuses Perform(Broadcast{...}) + Then.
func BroadcastThen[B any](bus *Bus, v Message, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Broadcast{Bus: bus, Value: v}), next)
}

// SendVBind sends as much of data as fits in one shot and passes the count
// to f. Fuses Perform(SendV{...}) + Bind.
func SendVBind[B any](bus *Bus, desc int, data []Message, f func(int) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(SendV{Bus: bus, Channel: desc, Data: data}), f)
}

// RecvVBind receives up to limit messages in one shot and passes them to
// f. Fuses Perform(RecvV{...}) + Bind.
func RecvVBind[B any](bus *Bus, desc int, limit int, f func([]Message) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(RecvV{Bus: bus, Channel: desc, Max: limit}), f)
}

// CloseThen closes the channel named by desc, lets the drained waiters run
// once, and then continues with next. Fuses Perform(Close{...}) + Then.
func CloseThen[B any](bus *Bus, desc int, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Close{Bus: bus, Channel: desc}), next)
}

// YieldThen offers a rescheduling point and then continues with next.
// Fuses Perform(Yield{}) + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield{}), next)
}
