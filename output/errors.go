// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrUnavailable    = errors.New("audio output not available in this build")
	ErrFormatMismatch = errors.New("source format does not match the device")
	ErrClosed         = errors.New("device is closed")
	ErrUnknownDriver  = errors.New("unknown audio output driver")
)
