// SPDX-License-Identifier: EPL-2.0

package avlog

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Level is the severity reported by a decoding library, from most to least
// severe.
type Level int

const (
	LevelFatal Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelVerbose
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "fatal"
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// zapLevel maps library severities onto the application's levels. Library
// chatter at info and below is only interesting when debugging, and fatal
// library errors must not terminate the player.
func (l Level) zapLevel() zapcore.Level {
	switch {
	case l <= LevelError:
		return zapcore.ErrorLevel
	case l == LevelWarning:
		return zapcore.WarnLevel
	default:
		return zapcore.DebugLevel
	}
}
