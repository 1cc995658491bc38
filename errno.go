// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Error taxonomy for bus operations. Every failing try-form returns one of
// these sentinels and records it in the errno slot.
var (
	// ErrNoChannel indicates a negative, out-of-range, or closed descriptor.
	ErrNoChannel = errors.New("corobus: no such channel")

	// ErrWouldBlock indicates a try-form cannot make progress now.
	// It is the iox backpressure boundary error, as for all transports
	// in this module family.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrNotImplemented is the catch-all for conditions not otherwise
	// specified.
	ErrNotImplemented = errors.New("corobus: not implemented")
)

// lastErr is the process-wide last-error slot. The bus is single-threaded,
// so a plain variable suffices.
var lastErr error

// Errno returns the last error recorded by a failing bus operation.
// The value is meaningless after a successful operation; read it
// immediately after a failure and before the next bus call.
func Errno() error { return lastErr }

// SetErrno records err in the process-wide last-error slot.
func SetErrno(err error) { lastErr = err }
