package rle

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// HeaderSize is the size of the length header at the start of every encoded
// stream.
const HeaderSize = 4

func appendHeader(dst []byte, n uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, n)
}

// parseHeader splits an encoded stream into the declared original length and
// the body.
func parseHeader(src []byte) (n uint64, body []byte, err error) {
	if len(src) < HeaderSize {
		return 0, nil, errors.Wrapf(ErrMalformedEncoding, "stream is %d bytes, shorter than the %d-byte header", len(src), HeaderSize)
	}
	return uint64(binary.LittleEndian.Uint32(src)), src[HeaderSize:], nil
}

// DecodedLen returns the length of the decoded form of src, as declared in
// its header.
func DecodedLen(src []byte) (int, error) {
	n, _, err := parseHeader(src)
	if err != nil {
		return 0, err
	}
	if n > uint64(maxInt) {
		return 0, errors.Wrapf(ErrAllocationFailure, "declared length %d does not fit in an int", n)
	}
	return int(n), nil
}
