// Package bench times codecs on a buffer and checks that they give back
// exactly what they were given.
package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/andybalholm/rle/internal/codecs"
	"github.com/pierrec/xxHash/xxHash32"
	"github.com/pkg/errors"
)

// A Result is the outcome of running one codec over one buffer.
type Result struct {
	Codec string

	InputSize   int
	EncodedSize int
	OutputSize  int

	// Elapsed covers compression and decompression together.
	Elapsed time.Duration

	InputDigest  uint32
	OutputDigest uint32
}

// Ratio is the encoded size as a fraction of the input size.
func (r Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.EncodedSize) / float64(r.InputSize)
}

// Verified reports whether the round trip reproduced the input.
func (r Result) Verified() bool {
	return r.InputSize == r.OutputSize && r.InputDigest == r.OutputDigest
}

// Run compresses data with c, decompresses the result, and reports the
// sizes, the time taken, and digests of the input and output.
func Run(c codecs.Codec, data []byte) (Result, error) {
	res := Result{
		Codec:       c.Name(),
		InputSize:   len(data),
		InputDigest: digest(data),
	}

	start := time.Now()
	encoded, err := c.Compress(data)
	if err != nil {
		return res, errors.Wrapf(err, "%s: compress", c.Name())
	}
	decoded, err := c.Decompress(encoded)
	if err != nil {
		return res, errors.Wrapf(err, "%s: decompress", c.Name())
	}
	res.Elapsed = time.Since(start)

	res.EncodedSize = len(encoded)
	res.OutputSize = len(decoded)
	res.OutputDigest = digest(decoded)
	return res, nil
}

// RunAll calls Run for each codec in turn. It stops at the first error.
func RunAll(cs []codecs.Codec, data []byte) ([]Result, error) {
	results := make([]Result, 0, len(cs))
	for _, c := range cs {
		r, err := Run(c, data)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// WriteTable writes results to w as an aligned table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "codec\tinput\tencoded\tratio\ttime\tdigest\tverified\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.4fs\t%08x\t%v\t\n",
			r.Codec, r.InputSize, r.EncodedSize, r.Ratio(), r.Elapsed.Seconds(), r.InputDigest, r.Verified())
	}
	return tw.Flush()
}

func digest(b []byte) uint32 {
	h := xxHash32.New(0)
	h.Write(b)
	return h.Sum32()
}
