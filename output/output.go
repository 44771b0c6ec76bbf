// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
)

// Format is the sample layout a device consumes.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d channels", f.SampleRate, f.Channels)
}

func (f Format) matches(src audio.Source) bool {
	return src.SampleRate() == f.SampleRate && src.Channels() == f.Channels
}

// Device is an opened output.
type Device interface {
	mixer.Device

	Name() string
	Format() Format
	// Play streams src until it ends or ctx is done.
	Play(ctx context.Context, src audio.Source) error
	Close() error
}

// pump reads src in chunks and hands each one to write until the source
// ends. io.EOF is not reported.
func pump(ctx context.Context, src audio.Source, write func([]float32) error) error {
	ch := max(src.Channels(), 1)
	size := src.BufSize()
	if size < ch {
		size = 4096
	}
	buf := make([]float32, size-size%ch)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			if werr := write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read samples: %w", err)
		}
	}
}
