// Package codecs puts the rle codec and a set of reference compressors behind
// one interface, so that they can be compared on the same data.
package codecs

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/andybalholm/rle"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// A Codec compresses and decompresses whole buffers.
type Codec interface {
	// Name is the short name used to select the codec on the command line.
	Name() string

	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// constructors builds each codec by name, in the order All returns them.
var constructors = []struct {
	name string
	new  func() (Codec, error)
}{
	{"rle", func() (Codec, error) { return RLE{}, nil }},
	{"snappy", func() (Codec, error) { return Snappy{}, nil }},
	{"lz4", func() (Codec, error) { return LZ4{}, nil }},
	{"zstd", func() (Codec, error) {
		z, err := NewZstd()
		if err != nil {
			return nil, err
		}
		return z, nil
	}},
	{"gzip", func() (Codec, error) { return Gzip{}, nil }},
	{"brotli", func() (Codec, error) { return Brotli{}, nil }},
}

// All returns one of each codec, with rle first.
// The caller must release them with Close.
func All() ([]Codec, error) {
	all := make([]Codec, 0, len(constructors))
	for _, c := range constructors {
		codec, err := c.new()
		if err != nil {
			Close(all...)
			return nil, err
		}
		all = append(all, codec)
	}
	return all, nil
}

// Names returns the names of the codecs returned by All.
func Names() []string {
	names := make([]string, len(constructors))
	for i, c := range constructors {
		names[i] = c.name
	}
	return names
}

// Lookup returns the codec with the given name. Only that codec is created.
// The caller must release it with Close.
func Lookup(name string) (Codec, error) {
	for _, c := range constructors {
		if c.name == name {
			return c.new()
		}
	}
	return nil, errors.Errorf("unknown codec %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Close releases the resources held by any of cs that implement io.Closer.
// It returns the first error encountered.
func Close(cs ...Codec) error {
	var first error
	for _, c := range cs {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil && first == nil {
				first = errors.Wrapf(err, "closing %s", c.Name())
			}
		}
	}
	return first
}

// RLE is the run-length codec from the rle package.
type RLE struct {
	// MaxSize is passed on to rle.Decoder.
	MaxSize int
}

func (RLE) Name() string { return "rle" }

func (RLE) Compress(src []byte) ([]byte, error) {
	return rle.Compress(src)
}

func (c RLE) Decompress(src []byte) ([]byte, error) {
	d := rle.Decoder{MaxSize: c.MaxSize}
	return d.Decode(src)
}

// Snappy uses the snappy block format.
type Snappy struct{}

func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (Snappy) Decompress(src []byte) ([]byte, error) {
	dst, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "snappy")
	}
	return dst, nil
}

// LZ4 uses the LZ4 frame format.
type LZ4 struct{}

func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(src []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	w := lz4.NewWriter(b)
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "lz4")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4")
	}
	return b.Bytes(), nil
}

func (LZ4) Decompress(src []byte) ([]byte, error) {
	return readAll("lz4", lz4.NewReader(bytes.NewReader(src)))
}

// Zstd uses the zstd format. Create one with NewZstd.
type Zstd struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstd returns a Zstd codec. Its encoder and decoder are safe for
// concurrent use.
func NewZstd(opts ...zstd.EOption) (*Zstd, error) {
	encoder, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, errors.Wrap(err, "zstd decoder")
	}
	return &Zstd{encoder, decoder}, nil
}

func (*Zstd) Name() string { return "zstd" }

func (z *Zstd) Compress(src []byte) ([]byte, error) {
	return z.encoder.EncodeAll(src, nil), nil
}

func (z *Zstd) Decompress(src []byte) ([]byte, error) {
	dst, err := z.decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd")
	}
	return dst, nil
}

// Close releases the goroutines held by the encoder and decoder. The codec
// must not be used after Close.
func (z *Zstd) Close() error {
	z.decoder.Close()
	return z.encoder.Close()
}

// Gzip uses the gzip format.
type Gzip struct {
	// Level is the compression level. The default (0) means
	// gzip.DefaultCompression.
	Level int
}

func (Gzip) Name() string { return "gzip" }

func (g Gzip) Compress(src []byte) ([]byte, error) {
	level := g.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	b := new(bytes.Buffer)
	w, err := gzip.NewWriterLevel(b, level)
	if err != nil {
		return nil, errors.Wrap(err, "gzip")
	}
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "gzip")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "gzip")
	}
	return b.Bytes(), nil
}

func (Gzip) Decompress(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "gzip")
	}
	return readAll("gzip", r)
}

// Brotli uses the brotli format.
type Brotli struct {
	// Level is the compression level. The default (0) means
	// brotli.DefaultCompression.
	Level int
}

func (Brotli) Name() string { return "brotli" }

func (c Brotli) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}
	b := new(bytes.Buffer)
	w := brotli.NewWriterLevel(b, level)
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "brotli")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "brotli")
	}
	return b.Bytes(), nil
}

func (Brotli) Decompress(src []byte) ([]byte, error) {
	return readAll("brotli", brotli.NewReader(bytes.NewReader(src)))
}

func readAll(name string, r io.Reader) ([]byte, error) {
	dst, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return dst, nil
}
