// SPDX-License-Identifier: EPL-2.0

package avlog

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Libraries lists the decoding modules whose versions LogVersions reports.
var Libraries = []string{
	"github.com/go-audio/aiff",
	"github.com/go-audio/wav",
	"github.com/hajimehoshi/go-mp3",
	"github.com/jfreymuth/oggvorbis",
}

// Versions returns the linked version of each entry in Libraries. Modules
// that are not linked into the binary are reported as "unknown".
func Versions() map[string]string {
	out := make(map[string]string, len(Libraries))
	for _, lib := range Libraries {
		out[lib] = "unknown"
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	for _, dep := range info.Deps {
		if _, want := out[dep.Path]; !want {
			continue
		}
		v := dep.Version
		if dep.Replace != nil {
			v += " (replaced by " + dep.Replace.Path + " " + dep.Replace.Version + ")"
		}
		out[dep.Path] = v
	}

	return out
}

// LogVersions writes the decoding library versions to log at info level.
func LogVersions(log *zap.Logger) {
	versions := Versions()

	fields := make([]zap.Field, 0, len(Libraries))
	for _, lib := range Libraries {
		fields = append(fields, zap.String(lib, versions[lib]))
	}

	log.Info("decoder library versions", fields...)
}
