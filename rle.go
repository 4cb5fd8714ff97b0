// The rle package is a byte-oriented run-length codec.
//
// An encoded stream is a 4-byte little-endian header holding the length of
// the original data, followed by a sequence of units:
//   - a single literal byte, which stands for itself, or
//   - a triple [c, c, n], which stands for n copies of c (2 <= n <= 255).
//
// The escape is self-describing: a byte followed by a copy of itself starts a
// triple, so no byte value has to be reserved. Runs are always maximal, which
// means a literal is never followed by a copy of itself.
package rle

import (
	"github.com/pkg/errors"
)

// maxInputLen is the largest length that fits in the header.
const maxInputLen = 1<<32 - 1

// maxRunLen is the largest count a single triple can carry.
const maxRunLen = 255

// MaxEncodedLen returns the maximum size of the encoding of n bytes of input.
// The worst case is a sequence of runs of length 2, each of which takes 3
// bytes.
func MaxEncodedLen(n int) int {
	return HeaderSize + n + n/2
}

// Compress returns the encoded form of src in a newly allocated slice.
func Compress(src []byte) ([]byte, error) {
	return Encode(make([]byte, 0, HeaderSize+len(src)), src)
}

// Encode appends the encoded form of src to dst, and returns dst.
// If src is too long for the header, dst is returned unchanged along with
// ErrInputTooLarge.
func Encode(dst, src []byte) ([]byte, error) {
	if err := checkInputLen(uint64(len(src))); err != nil {
		return dst, err
	}
	dst = appendHeader(dst, uint32(len(src)))

	// runChar starts out as 0 with an empty run, so a leading 0 byte simply
	// extends that run.
	runStart := 0
	var runChar byte
	for i, c := range src {
		length := i - runStart
		if c != runChar {
			dst = appendRun(dst, runChar, length)
			runStart = i
			runChar = c
		} else if length == maxRunLen {
			// One more byte would overflow the count; start a new run here.
			dst = appendRun(dst, runChar, length)
			runStart = i
		}
	}
	return appendRun(dst, runChar, len(src)-runStart), nil
}

func checkInputLen(n uint64) error {
	if n > maxInputLen {
		return errors.Wrapf(ErrInputTooLarge, "%d bytes (limit %d)", n, uint64(maxInputLen))
	}
	return nil
}

// appendRun appends the encoding of length copies of c.
func appendRun(dst []byte, c byte, length int) []byte {
	switch {
	case length == 0:
		return dst
	case length == 1:
		return append(dst, c)
	default:
		return append(dst, c, c, byte(length))
	}
}
