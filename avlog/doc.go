// SPDX-License-Identifier: EPL-2.0

// Package avlog forwards diagnostics from the audio decoders to the
// application's zap logger.
//
// Messages are routed by the Class of the object that produced them:
//
//	av          anything else, or messages without an object
//	av.audio    codec objects decoding audio
//	av.video    codec objects decoding video
//	av.demuxer  format objects reading an input container
//
// Severities use the six-level Level scale and are mapped onto zap levels.
//
// The Bridge is created detached. The owner of the process logger attaches it
// once at start-up and detaches it at shutdown:
//
//	bridge := avlog.New()
//	bridge.Attach(logger)
//	defer bridge.Detach(logger)
//
//	bridge.Logf(src, avlog.LevelWarning, "skipping %d bad frames\n", n)
package avlog
