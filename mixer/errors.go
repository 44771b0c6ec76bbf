// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrDeviceVolumeUnsupported = errors.New("device has no native volume control")
	ErrDeviceVolumeIO          = errors.New("device volume update failed")
	ErrNoActiveBinding         = errors.New("no audio device bound")
	ErrInvalidRestoreData      = errors.New("invalid volume restore data")
)
