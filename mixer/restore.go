// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strconv"
	"strings"
)

const restoreVersion = "v1"

// DriverSoftvol names the software mechanism in restore data.
const DriverSoftvol = "softvol"

// RestoreData is a serializable snapshot of the volume settings.
//
// The text form is
//
//	v1:<driver>:<left>:<right>:<balance>:<mute>
//
// where mute is 0 or 1. The older four-field form
// <driver>:<left>:<right>:<mute> is also accepted by ParseRestoreData.
type RestoreData struct {
	Driver  string
	Left    float64
	Right   float64
	Balance float64
	Mute    bool
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (d RestoreData) String() string {
	driver := strings.ReplaceAll(d.Driver, ":", "_")
	if driver == "" {
		driver = "none"
	}
	mute := "0"
	if d.Mute {
		mute = "1"
	}
	return strings.Join([]string{
		restoreVersion,
		driver,
		formatFloat(d.Left),
		formatFloat(d.Right),
		formatFloat(d.Balance),
		mute,
	}, ":")
}

// ParseRestoreData decodes a token produced by RestoreData.String.
func ParseRestoreData(token string) (RestoreData, error) {
	fields := strings.Split(strings.TrimSpace(token), ":")

	var (
		d      RestoreData
		floats []string
		mute   string
	)
	switch {
	case len(fields) == 6 && fields[0] == restoreVersion:
		d.Driver = fields[1]
		floats = fields[2:5]
		mute = fields[5]
	case len(fields) == 4:
		d.Driver = fields[0]
		floats = fields[1:3]
		mute = fields[3]
	default:
		return RestoreData{}, fmt.Errorf("%w: %q", ErrInvalidRestoreData, token)
	}

	vals := make([]float64, len(floats))
	for i, f := range floats {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return RestoreData{}, fmt.Errorf("%w: %w", ErrInvalidRestoreData, err)
		}
		vals[i] = v
	}

	m, err := strconv.ParseBool(mute)
	if err != nil {
		return RestoreData{}, fmt.Errorf("%w: %w", ErrInvalidRestoreData, err)
	}

	d.Left = clampVolume(vals[0])
	d.Right = clampVolume(vals[1])
	d.Mute = m
	if len(vals) == 3 {
		d.Balance = clampBalance(vals[2])
	} else if sum := d.Left + d.Right; sum > 0 {
		d.Balance = (d.Right - d.Left) / sum
	}

	return d, nil
}
