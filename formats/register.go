// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// Register adds the wav, mp3, ogg and aiff decoders to reg, keyed by the
// usual file extensions. bridge may be nil.
func Register(reg *audio.Registry, bridge *avlog.Bridge) {
	reg.Register("wav", wav.Decoder{Log: bridge})
	reg.Register("wave", wav.Decoder{Log: bridge})
	reg.Register("mp3", mp3.Decoder{Log: bridge})
	reg.Register("ogg", vorbis.Decoder{Log: bridge})
	reg.Register("oga", vorbis.Decoder{Log: bridge})
	reg.Register("aiff", aiff.Decoder{Log: bridge})
	reg.Register("aif", aiff.Decoder{Log: bridge})
}

// NewRegistry returns a Registry holding every bundled decoder.
func NewRegistry(bridge *avlog.Bridge) *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg, bridge)
	return reg
}
