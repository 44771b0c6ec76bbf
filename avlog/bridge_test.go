// SPDX-License-Identifier: EPL-2.0

package avlog

import (
	"bytes"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeObject struct {
	class Class
}

func (o fakeObject) LogClass() Class { return o.class }

func newObserved(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func attached(t *testing.T, level zapcore.Level) (*Bridge, *observer.ObservedLogs) {
	t.Helper()

	log, logs := newObserved(level)
	b := New()
	if !b.Attach(log) {
		t.Fatal("Attach() = false on a fresh bridge")
	}
	return b, logs
}

func TestBridge_Routing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		obj    Object
		logger string
		prefix string
	}{
		{"nil object", nil, "av", "?: "},
		{"audio decoder", fakeObject{Class{Name: ClassCodec, Item: "mp3", Media: MediaAudio, Decoder: true}}, "av.audio", "mp3: "},
		{"video decoder", fakeObject{Class{Name: ClassCodec, Item: "h264", Media: MediaVideo, Decoder: true}}, "av.video", "h264: "},
		{"audio encoder", fakeObject{Class{Name: ClassCodec, Item: "pcm", Media: MediaAudio}}, "av", "pcm: "},
		{"demuxer", fakeObject{Class{Name: ClassFormat, Item: "wav", Demuxer: true}}, "av.demuxer", "wav: "},
		{"muxer", fakeObject{Class{Name: ClassFormat, Item: "wav"}}, "av", "wav: "},
		{"other class", fakeObject{Class{Name: "resampler", Item: "swr"}}, "av", "swr: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, logs := attached(t, zapcore.DebugLevel)
			b.Log(tt.obj, LevelWarning, "hello\n")

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			if entries[0].LoggerName != tt.logger {
				t.Errorf("LoggerName = %q, want %q", entries[0].LoggerName, tt.logger)
			}
			if want := tt.prefix + "hello"; entries[0].Message != want {
				t.Errorf("Message = %q, want %q", entries[0].Message, want)
			}
		})
	}
}

func TestBridge_MissingClassWarns(t *testing.T) {
	t.Parallel()

	b, logs := attached(t, zapcore.DebugLevel)
	b.Log(fakeObject{}, LevelError, "boom\n")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].LoggerName != "av" {
		t.Errorf("first entry = %v %q, want warn on av", entries[0].Level, entries[0].LoggerName)
	}
	if entries[1].Message != "?: boom" {
		t.Errorf("Message = %q, want %q", entries[1].Message, "?: boom")
	}
}

func TestBridge_PartialLinesKeepOnePrefix(t *testing.T) {
	t.Parallel()

	b, logs := attached(t, zapcore.DebugLevel)
	obj := fakeObject{Class{Name: ClassFormat, Item: "ogg", Demuxer: true}}

	b.Log(obj, LevelInfo, "stream 0: ")
	b.Log(obj, LevelInfo, "vorbis, 44100 Hz\n")
	b.Log(obj, LevelInfo, "next line\n")

	want := []string{"ogg: stream 0: ", "vorbis, 44100 Hz", "ogg: next line"}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Message, want[i])
		}
	}
}

func TestBridge_DisabledLevelDoesNotTouchPrefix(t *testing.T) {
	t.Parallel()

	b, logs := attached(t, zapcore.InfoLevel)
	obj := fakeObject{Class{Name: ClassCodec, Item: "mp3", Media: MediaAudio, Decoder: true}}

	b.Log(obj, LevelDebug, "partial")
	b.Log(obj, LevelError, "bad frame\n")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Message != "mp3: bad frame" {
		t.Errorf("Message = %q, want %q", entries[0].Message, "mp3: bad frame")
	}
}

func TestBridge_LevelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Level
		want zapcore.Level
	}{
		{LevelFatal, zapcore.ErrorLevel},
		{LevelError, zapcore.ErrorLevel},
		{LevelWarning, zapcore.WarnLevel},
		{LevelInfo, zapcore.DebugLevel},
		{LevelVerbose, zapcore.DebugLevel},
		{LevelDebug, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		b, logs := attached(t, zapcore.DebugLevel)
		b.Log(nil, tt.in, "x\n")

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("%v: got %d entries, want 1", tt.in, len(entries))
		}
		if entries[0].Level != tt.want {
			t.Errorf("%v mapped to %v, want %v", tt.in, entries[0].Level, tt.want)
		}
		if got := entries[0].ContextMap()["severity"]; got != tt.in.String() {
			t.Errorf("severity field = %v, want %q", got, tt.in.String())
		}
	}
}

func TestBridge_DetachedWritesFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := New()
	b.SetFallback(&buf)

	b.Logf(nil, LevelError, "decoder %s failed\n", "mp3")

	if got := buf.String(); got != "decoder mp3 failed\n" {
		t.Errorf("fallback output = %q", got)
	}
}

func TestBridge_AttachOnceDetachOnMatch(t *testing.T) {
	t.Parallel()

	first, firstLogs := newObserved(zapcore.DebugLevel)
	second, _ := newObserved(zapcore.DebugLevel)

	b := New()
	b.SetFallback(&bytes.Buffer{})

	if !b.Attach(first) {
		t.Fatal("Attach(first) = false")
	}
	if b.Attach(second) {
		t.Error("Attach(second) = true while first is attached")
	}
	if b.Detach(second) {
		t.Error("Detach(second) = true, want false for a non-owner")
	}
	if !b.Attached() {
		t.Fatal("Attached() = false after a rejected Detach")
	}

	b.Log(nil, LevelWarning, "still here\n")
	if firstLogs.Len() != 1 {
		t.Errorf("first logger got %d entries, want 1", firstLogs.Len())
	}

	if !b.Detach(first) {
		t.Error("Detach(first) = false")
	}
	if b.Attached() {
		t.Error("Attached() = true after Detach")
	}
	if b.Detach(first) {
		t.Error("second Detach(first) = true")
	}

	b.Log(nil, LevelWarning, "dropped to fallback\n")
	if firstLogs.Len() != 1 {
		t.Errorf("first logger got %d entries after detach, want 1", firstLogs.Len())
	}

	if !b.Attach(second) {
		t.Error("Attach(second) = false after first detached")
	}
}

func TestBridge_AttachNil(t *testing.T) {
	t.Parallel()

	if New().Attach(nil) {
		t.Error("Attach(nil) = true")
	}
}

func TestBridge_ConcurrentLog(t *testing.T) {
	t.Parallel()

	b, logs := attached(t, zapcore.DebugLevel)
	obj := fakeObject{Class{Name: ClassCodec, Item: "vorbis", Media: MediaAudio, Decoder: true}}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				b.Log(obj, LevelWarning, "line\n")
			}
		}()
	}
	wg.Wait()

	if logs.Len() != 400 {
		t.Errorf("got %d entries, want 400", logs.Len())
	}
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	if LevelVerbose.String() != "verbose" {
		t.Errorf("LevelVerbose.String() = %q", LevelVerbose.String())
	}
	if Level(42).String() != "Level(42)" {
		t.Errorf("Level(42).String() = %q", Level(42).String())
	}
}

func TestVersions(t *testing.T) {
	t.Parallel()

	v := Versions()
	for _, lib := range Libraries {
		if v[lib] == "" {
			t.Errorf("Versions()[%q] is empty", lib)
		}
	}

	log, logs := newObserved(zapcore.InfoLevel)
	LogVersions(log)
	if logs.Len() != 1 {
		t.Fatalf("LogVersions() wrote %d entries, want 1", logs.Len())
	}
	if got := len(logs.All()[0].Context); got != len(Libraries) {
		t.Errorf("LogVersions() fields = %d, want %d", got, len(Libraries))
	}
}

func TestBridge_NilIsNoop(t *testing.T) {
	t.Parallel()

	var b *Bridge
	b.Log(nil, LevelError, "ignored\n")
	b.Logf(nil, LevelError, "ignored %d\n", 1)
}
