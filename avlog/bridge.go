// SPDX-License-Identifier: EPL-2.0

package avlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// RootName is the logger name of the bridge's root sink. The other sinks
// are named RootName+".audio", ".video" and ".demuxer".
const RootName = "av"

// Bridge forwards decoder and demuxer messages to the application logger.
//
// A Bridge starts detached; messages are then written unformatted to the
// fallback writer (stderr by default). Attach binds it to a logger once;
// Detach only succeeds for the logger that attached it. Log may be called
// from any goroutine.
type Bridge struct {
	mu sync.Mutex

	owner   *zap.Logger
	root    *zap.Logger
	audio   *zap.Logger
	video   *zap.Logger
	demuxer *zap.Logger

	// printPrefix is false while the previous message did not end a line.
	printPrefix bool
	fallback    io.Writer
}

func New() *Bridge {
	return &Bridge{
		printPrefix: true,
		fallback:    os.Stderr,
	}
}

// SetFallback sets the writer used while the bridge is detached.
func (b *Bridge) SetFallback(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	b.fallback = w
}

// Attach binds the bridge to log if it is not bound yet. It reports whether
// log is now the owner.
func (b *Bridge) Attach(log *zap.Logger) bool {
	if log == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.owner != nil {
		return b.owner == log
	}

	b.owner = log
	b.root = log.Named(RootName)
	b.audio = b.root.Named("audio")
	b.video = b.root.Named("video")
	b.demuxer = b.root.Named("demuxer")
	b.printPrefix = true

	return true
}

// Detach unbinds the bridge if log is the logger that attached it.
func (b *Bridge) Detach(log *zap.Logger) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.owner == nil || b.owner != log {
		return false
	}

	_ = b.root.Sync()
	b.owner = nil
	b.root, b.audio, b.video, b.demuxer = nil, nil, nil, nil

	return true
}

func (b *Bridge) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.owner != nil
}

// Logf formats a message and passes it to Log.
func (b *Bridge) Logf(obj Object, level Level, format string, args ...any) {
	if b == nil {
		return
	}
	b.Log(obj, level, fmt.Sprintf(format, args...))
}

// Log routes msg from obj to the matching sink. obj may be nil. Logging to
// a nil Bridge is a no-op.
//
// A message is prefixed with "<item>: " unless the previous enabled message
// did not end with a newline, so one line split over several calls is
// labelled once.
func (b *Bridge) Log(obj Object, level Level, msg string) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.owner == nil {
		_, _ = io.WriteString(b.fallback, msg)
		return
	}

	var (
		cls  Class
		item = "?"
	)
	if obj != nil {
		cls = obj.LogClass()
		if cls.Item != "" {
			item = cls.Item
		}
	}

	sink := b.route(obj != nil, cls)
	ce := sink.Check(level.zapLevel(), "")
	if ce == nil {
		return
	}

	text := msg
	if b.printPrefix {
		text = item + ": " + msg
	}
	if msg != "" {
		b.printPrefix = strings.HasSuffix(msg, "\n")
	}

	ce.Message = strings.TrimRight(text, "\n")
	ce.Write(zap.Stringer("severity", level))
}

func (b *Bridge) route(hasObj bool, cls Class) *zap.Logger {
	if !hasObj {
		return b.root
	}

	switch cls.Name {
	case "":
		b.root.Warn("log message from an object without class; this is a bug in the decoder")
	case ClassCodec:
		if cls.Decoder {
			switch cls.Media {
			case MediaAudio:
				return b.audio
			case MediaVideo:
				return b.video
			}
		}
	case ClassFormat:
		if cls.Demuxer {
			return b.demuxer
		}
	}

	return b.root
}
