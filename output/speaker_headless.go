//go:build headless

// SPDX-License-Identifier: EPL-2.0

package output

import "go.uber.org/zap"

// NewSpeaker is not available in headless builds.
func NewSpeaker(Format, *zap.Logger) (Device, error) {
	return nil, ErrUnavailable
}
