package rle

import (
	"github.com/pkg/errors"
)

const maxInt = int(^uint(0) >> 1)

// A Decoder decodes encoded streams. The zero value is ready to use.
// A Decoder is not modified by Decode, so it may be shared between
// goroutines.
type Decoder struct {
	// MaxSize is the largest decoded length the Decoder will allocate a
	// buffer for. Streams that declare a longer length fail with
	// ErrAllocationFailure. The default (0) means no limit other than what
	// the header and the platform can represent.
	MaxSize int
}

// Decompress returns the decoded form of src in a newly allocated slice.
func Decompress(src []byte) ([]byte, error) {
	var d Decoder
	return d.Decode(src)
}

// Decode returns the decoded form of src in a newly allocated slice of
// exactly the length declared in the header. On error the result is nil.
func (d *Decoder) Decode(src []byte) ([]byte, error) {
	n, body, err := parseHeader(src)
	if err != nil {
		return nil, err
	}
	// A corrupt header is reported as corrupt even when it would also
	// exceed the size limit.
	if limit := maxDecodedLen(len(body)); n > limit {
		return nil, errors.Wrapf(ErrMalformedEncoding, "declared length %d, but a %d-byte body expands to at most %d", n, len(body), limit)
	}
	if n > uint64(maxInt) || (d.MaxSize > 0 && n > uint64(d.MaxSize)) {
		return nil, errors.Wrapf(ErrAllocationFailure, "declared length %d exceeds the limit of %d", n, d.limit())
	}

	dst, err := allocate(int(n))
	if err != nil {
		return nil, err
	}

	pos := 0
	for i := 0; i < len(body); {
		c, count, width := unitAt(body, i)
		if count > len(dst)-pos {
			return nil, errors.Wrapf(ErrMalformedEncoding, "unit at offset %d writes %d bytes at position %d, past the declared length %d", HeaderSize+i, count, pos, n)
		}
		fill(dst[pos:pos+count], c)
		pos += count
		i += width
	}
	if pos != len(dst) {
		return nil, errors.Wrapf(ErrMalformedEncoding, "body produced %d bytes, but the header declares %d", pos, n)
	}
	return dst, nil
}

func (d *Decoder) limit() int {
	if d.MaxSize > 0 {
		return d.MaxSize
	}
	return maxInt
}

// unitAt decodes the unit starting at body[i]. It returns the byte value, how
// many times it repeats, and how many bytes of body the unit takes up.
// A byte only starts a triple if the count byte is actually present, so a
// trailing pair of equal bytes is read as two literals.
func unitAt(body []byte, i int) (c byte, count, width int) {
	c = body[i]
	if i+2 < len(body) && body[i+1] == c {
		return c, int(body[i+2]), 3
	}
	return c, 1, 1
}

// maxDecodedLen returns the most bytes a body of n bytes could decode to:
// as many full-length triples as will fit, then literals.
func maxDecodedLen(n int) uint64 {
	return uint64(n/3)*maxRunLen + uint64(n%3)
}

// allocate makes the output buffer, turning a refusal from the runtime into
// ErrAllocationFailure.
func allocate(n int) (dst []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			dst = nil
			err = errors.Wrapf(ErrAllocationFailure, "%d bytes: %v", n, r)
		}
	}()
	return make([]byte, n), nil
}

func fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}
