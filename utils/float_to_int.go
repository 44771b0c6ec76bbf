// SPDX-License-Identifier: EPL-2.0

package utils

func clampUnit(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a sample in [-1,1] to 16-bit PCM, clamping first.
func Float32ToInt16(x float32) int16 {
	// 32767 keeps +1.0 from overflowing
	return int16(clampUnit(x) * 32767.0)
}

// Float32ToPCM converts a sample in [-1,1] to a signed integer of the given
// bit depth (8, 16, 24 or 32). Unknown depths are treated as 16-bit.
func Float32ToPCM(x float32, bitDepth int) int {
	v := float64(clampUnit(x))
	switch bitDepth {
	case 8:
		return int(v * 127)
	case 24:
		return int(v * 8388607)
	case 32:
		return int(v * 2147483647)
	default:
		return int(Float32ToInt16(x))
	}
}

// PCMToFloat32 converts a signed integer sample of the given bit depth to
// [-1,1]. Unknown depths are treated as 16-bit.
func PCMToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
