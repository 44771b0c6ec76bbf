// SPDX-License-Identifier: EPL-2.0

package avlog

// Class names understood by the router.
const (
	ClassCodec  = "codec"
	ClassFormat = "format"
)

type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaAudio
	MediaVideo
)

// Class identifies the library object a message comes from.
type Class struct {
	// Name is the object kind, usually ClassCodec or ClassFormat.
	Name string
	// Item is the instance name printed in front of messages, e.g. "mp3".
	Item  string
	Media MediaType
	// Decoder is set for codec objects that decode.
	Decoder bool
	// Demuxer is set for format objects reading an input format.
	Demuxer bool
}

// Object is implemented by anything that logs through a Bridge.
type Object interface {
	LogClass() Class
}
