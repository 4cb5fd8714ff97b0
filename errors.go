package rle

import "github.com/pkg/errors"

var (
	// ErrInputTooLarge is returned by the encoder when the input is too long
	// for its length to fit in the 32-bit header.
	ErrInputTooLarge = errors.New("rle: input too large")

	// ErrMalformedEncoding is returned by the decoder when the encoded stream
	// is corrupt or truncated: it is missing its header, or its units do not
	// produce exactly the declared number of bytes.
	ErrMalformedEncoding = errors.New("rle: malformed encoding")

	// ErrAllocationFailure is returned by the decoder when the output buffer
	// can't be obtained.
	ErrAllocationFailure = errors.New("rle: allocation failure")
)
