// Package histogram prints an ASCII per-channel intensity histogram of an
// image to stderr, gated behind --debug (§4.K). It is a diagnostic aid
// only - never part of the cipher or stego data path.
package histogram

import (
	"fmt"
	"io"
	"strings"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
)

const (
	buckets   = 16
	barWidth  = 40
	bucketLen = 256 / buckets
)

var channelNames = []string{"R", "G", "B"}

// Print writes a fixed-width ASCII bar chart of img's per-channel intensity
// distribution to w: per channel, a name line followed by one line per
// intensity bucket.
func Print(w io.Writer, img *imgbuf.Image) {
	for c := 0; c < img.Channels; c++ {
		counts := count(img, c)
		max := 0
		for _, v := range counts {
			if v > max {
				max = v
			}
		}
		name := fmt.Sprintf("ch%d", c)
		if c < len(channelNames) {
			name = channelNames[c]
		}
		fmt.Fprintf(w, "%s:\n", name)
		for b, v := range counts {
			barLen := 0
			if max > 0 {
				barLen = v * barWidth / max
			}
			fmt.Fprintf(w, "  [%3d-%3d] %s %d\n", b*bucketLen, b*bucketLen+bucketLen-1, strings.Repeat("#", barLen), v)
		}
	}
}

func count(img *imgbuf.Image, channel int) [buckets]int {
	var counts [buckets]int
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := img.Get(x, y, channel)
			counts[int(v)/bucketLen]++
		}
	}
	return counts
}
