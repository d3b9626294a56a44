package streampress

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// flusher is the optional flush capability of a sink or adapter.
type flusher interface {
	Flush() error
}

// NewWriter wraps w so that data written to the returned stream is
// compressed with the given codec before reaching w. params is a raw
// parameter string, parsed per ParseParams; each codec reads only the
// parameters it recognizes and ignores the rest.
//
// Closing the returned stream finalizes the codec's framing (trailers,
// checksums) exactly once. It never closes w.
func NewWriter(w io.Writer, codec Codec, params string) (io.WriteCloser, error) {
	ps, err := ParseParams(params)
	if err != nil {
		return nil, err
	}
	return NewWriterParams(w, codec, ps)
}

// NewWriterParams is NewWriter for an already-parsed ParamSet.
//
// Numeric parameters outside a codec's documented range are not validated
// here; they are handed to the underlying engine, whose own rejection (if
// any) surfaces as a construction error.
func NewWriterParams(w io.Writer, codec Codec, ps ParamSet) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		level := GetParsed(ps, "level", 3)
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		return enc, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	case Gzip:
		enc, err := gzip.NewWriterLevel(w, GetParsed(ps, "level", 3))
		if err != nil {
			return nil, fmt.Errorf("gzip encoder: %w", err)
		}
		return enc, nil
	case Zlib:
		enc, err := zlib.NewWriterLevel(w, GetParsed(ps, "level", 3))
		if err != nil {
			return nil, fmt.Errorf("zlib encoder: %w", err)
		}
		return enc, nil
	case Deflate:
		enc, err := flate.NewWriter(w, GetParsed(ps, "level", 3))
		if err != nil {
			return nil, fmt.Errorf("deflate encoder: %w", err)
		}
		return enc, nil
	case Bzip2:
		enc, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: GetParsed(ps, "level", 3)})
		if err != nil {
			return nil, fmt.Errorf("bzip2 encoder: %w", err)
		}
		return enc, nil
	case LZ4:
		enc, err := newLZ4Writer(w, ps)
		if err != nil {
			return nil, fmt.Errorf("lz4 encoder: %w", err)
		}
		return enc, nil
	case XZ:
		enc, err := newXZWriter(w, GetParsed(ps, "level", 6))
		if err != nil {
			return nil, fmt.Errorf("xz encoder: %w", err)
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}

// xzDictCaps maps xz preset levels 0-9 to their dictionary capacities,
// matching the xz(1) preset table.
var xzDictCaps = [...]int{
	0: 256 << 10,
	1: 1 << 20,
	2: 2 << 20,
	3: 4 << 20,
	4: 4 << 20,
	5: 8 << 20,
	6: 8 << 20,
	7: 16 << 20,
	8: 32 << 20,
	9: 64 << 20,
}

func newXZWriter(w io.Writer, level int) (io.WriteCloser, error) {
	cfg := xz.WriterConfig{}
	if level >= 0 && level < len(xzDictCaps) {
		cfg.DictCap = xzDictCaps[level]
	}
	return cfg.NewWriter(w)
}

// nopWriteCloser is the None codec: passthrough writes, and a Close that
// leaves the wrapped sink open like every other adapter.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
