// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the length of the canonical header written by WriteWAV16.
const HeaderSize = 44

// WriteHeader16 writes a canonical 16-bit PCM header announcing dataSize
// bytes of samples. A dataSize of 0xFFFFFFFF marks a stream of unknown
// length.
func WriteHeader16(w io.Writer, sampleRate, channels int, dataSize uint32) error {
	if channels < 1 {
		return ErrInvalidChannels
	}

	const bitsPerSample = 16
	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	riffSize := dataSize
	if riffSize <= 0xFFFFFFFF-36 {
		riffSize += 36
	}

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}

// WriteSamples16 writes interleaved samples as little-endian 16-bit PCM.
func WriteSamples16(w io.Writer, samples []int16) error {
	const chunkSize = 8192

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write wav samples: %w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a complete 16-bit PCM WAV. samples are interleaved
// over channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if err := WriteHeader16(w, sampleRate, channels, uint32(len(samples)*2)); err != nil {
		return err
	}
	return WriteSamples16(w, samples)
}
