// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audmix/formats/wav"
)

func ExampleDecoder_Decode() {
	var buf bytes.Buffer
	_ = wav.WriteWAV16(&buf, 16000, 1, []int16{0, 16384, -16384})

	src, err := wav.Decoder{}.Decode(&buf)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	samples := make([]float32, 8)
	n, _ := src.ReadSamples(samples)
	fmt.Println(src.SampleRate(), src.Channels(), samples[:n])
	// Output: 16000 1 [0 0.5 -0.5]
}
