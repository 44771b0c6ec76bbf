// SPDX-License-Identifier: EPL-2.0

// Package output provides the devices the player writes to.
//
// Every Device satisfies mixer.Device, so the mixer can probe for a native
// volume control and drive it:
//
//	null     discards audio; native volume is optional
//	wav      16-bit PCM file or stream; no native volume
//	speaker  system audio through oto; native volume is the player volume
//
// The speaker is left out of builds tagged headless, where NewSpeaker
// returns ErrUnavailable.
package output
