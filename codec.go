// Package streampress consolidates the popular stream compression formats
// behind a single writer/reader facade.
//
// NewWriter wraps a raw sink so that everything written to the wrapper is
// compressed before reaching the sink; NewReader wraps a compressed source
// so that everything read from the wrapper is already decompressed.
// Supported formats: Zstd, Snappy, Gzip, Zlib, Deflate, Bzip2, LZ4 and XZ,
// plus a passthrough None codec. Codec behavior is tuned with a small
// "key=value;key2=value2" parameter string (see ParseParams); decoding
// never takes parameters because every supported format self-describes
// its decode configuration in the stream header.
package streampress

import (
	"errors"
	"fmt"
	"strings"
)

// Codec identifies a stream compression format. The set is closed:
// dispatch is an exhaustive switch, so adding a codec is a localized,
// compile-time-checked change.
type Codec uint8

const (
	// None passes data through untransformed.
	None Codec = iota
	// Zstd compression. Parameters: level (1-22, 1 fastest, default 3).
	Zstd
	// Snappy frame format. All parameters are ignored.
	Snappy
	// Gzip compression. Parameters: level (0-9, 0 fastest, default 3).
	Gzip
	// Zlib compression. Parameters: level (0-9, 0 fastest, default 3).
	Zlib
	// Deflate (raw flate) compression. Parameters: level (0-9, default 3).
	Deflate
	// Bzip2 compression. Parameters: level (1-9, 1 fastest, default 3).
	Bzip2
	// LZ4 frame format. Parameters: level (0-16, 0 fastest, default 1),
	// block_mode (linked|independent, default linked). Content checksums
	// are always enabled.
	LZ4
	// XZ compression. Parameters: level (0-9, 0 fastest, default 6).
	XZ
)

// ErrUnknownCodec is returned when a codec name or value is not in the
// supported set. Unknown codecs are a configuration error, never a
// silent fallback to None.
var ErrUnknownCodec = errors.New("unknown compression codec")

// ParseCodec resolves a codec name to its Codec value. Matching is
// case-insensitive and alias-tolerant: "gz" and "GZIP" both resolve to
// Gzip, "zst" to Zstd, "bz2" to Bzip2.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "snappy":
		return Snappy, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "deflate":
		return Deflate, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "lz4":
		return LZ4, nil
	case "xz":
		return XZ, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Deflate:
		return "deflate"
	case Bzip2:
		return "bzip2"
	case LZ4:
		return "lz4"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}
