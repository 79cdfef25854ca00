package source

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the encoding of a CSV payload.
type Compression int

const (
	// None means plain text.
	None Compression = iota
	// Gzip is RFC 1952 gzip (".gz").
	Gzip
	// Zstd is Zstandard (".zst").
	Zstd
	// LZ4 is the LZ4 frame format (".lz4").
	LZ4
	// Brotli is RFC 7932 brotli (".br").
	Brotli
)

// String returns the string representation of Compression.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Brotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// CompressionFor guesses the compression from the extension of name.
// Matching is case-insensitive; anything unrecognised is None.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	case ".br":
		return Brotli
	default:
		return None
	}
}

// NewReader wraps r with a decoder for c. Closing the result releases the
// decoder only; r stays open.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// stack reads from the outermost reader and closes every layer, outermost
// first.
type stack struct {
	io.Reader
	closers []io.Closer
}

func newStack(r io.Reader, closers ...io.Closer) *stack {
	return &stack{Reader: r, closers: closers}
}

func (s *stack) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
