// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strings"
)

// GainCurve maps a volume percentage to a linear amplitude factor.
type GainCurve int

const (
	// CurveLinear maps 50% to a gain of 0.5.
	CurveLinear GainCurve = iota
	// CurveCubic follows perceived loudness more closely: gain = (v/100)^3.
	CurveCubic
)

func (c GainCurve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveCubic:
		return "cubic"
	}
	return fmt.Sprintf("GainCurve(%d)", int(c))
}

func ParseGainCurve(s string) (GainCurve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return CurveLinear, nil
	case "cubic":
		return CurveCubic, nil
	}
	return CurveLinear, fmt.Errorf("unknown gain curve %q", s)
}

// Gain converts volume in [0,100] to an amplitude factor in [0,1].
func (c GainCurve) Gain(volume float64) float64 {
	v := clampVolume(volume) / MaxVolume
	if c == CurveCubic {
		return v * v * v
	}
	return v
}
