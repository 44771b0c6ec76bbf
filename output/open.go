// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Drivers lists the names accepted by Open.
var Drivers = []string{"null", "wav", "speaker"}

// Open opens the named driver. For "wav", path names the file to write;
// "-" or "" writes to stdout.
func Open(driver string, f Format, path string, log *zap.Logger) (Device, error) {
	switch driver {
	case "null":
		return NewNull(f, NullOptions{Realtime: true}), nil
	case "wav":
		if path == "" || path == "-" {
			// hide Seek; stdout is usually a pipe
			return NewWAVFile(struct{ io.Writer }{os.Stdout}, f), nil
		}
		return CreateWAVFile(path, f)
	case "speaker":
		return NewSpeaker(f, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
