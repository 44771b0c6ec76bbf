// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strings"
)

// SoftvolMode selects which mechanism applies volume.
type SoftvolMode int

const (
	// SoftvolNo asks for the device's native volume control.
	SoftvolNo SoftvolMode = iota
	// SoftvolYes always scales samples in the filter chain.
	SoftvolYes
	// SoftvolAuto uses the device control when available.
	SoftvolAuto
)

func (s SoftvolMode) String() string {
	switch s {
	case SoftvolNo:
		return "no"
	case SoftvolYes:
		return "yes"
	case SoftvolAuto:
		return "auto"
	}
	return fmt.Sprintf("SoftvolMode(%d)", int(s))
}

// ParseSoftvolMode accepts "no", "yes" and "auto" (case-insensitive).
func ParseSoftvolMode(s string) (SoftvolMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "hardware", "hw":
		return SoftvolNo, nil
	case "yes", "software", "sw":
		return SoftvolYes, nil
	case "auto", "":
		return SoftvolAuto, nil
	}
	return SoftvolAuto, fmt.Errorf("unknown softvol mode %q", s)
}

// Mode is the mechanism in effect for one device binding.
type Mode int

const (
	ModeHardware Mode = iota
	ModeSoftware
)

func (m Mode) String() string {
	if m == ModeHardware {
		return "hardware"
	}
	return "software"
}

// ResolveMode decides the volume mechanism for a new binding.
// The result depends only on the configured mode and what the device reports.
func ResolveMode(softvol SoftvolMode, nativeSupported bool) Mode {
	if softvol == SoftvolYes || !nativeSupported {
		return ModeSoftware
	}
	return ModeHardware
}
