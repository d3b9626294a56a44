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
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// NewReader wraps r so that reads from the returned stream yield the
// decompressed contents of r. Decoding takes no parameters: every
// supported format self-describes its decode configuration in the
// stream header, so only the codec routes to the matching decoder.
//
// Closing the returned stream releases decoder state. It never closes r.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case Gzip:
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip decoder: %w", err)
		}
		return dec, nil
	case Zlib:
		dec, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib decoder: %w", err)
		}
		return dec, nil
	case Deflate:
		return flate.NewReader(r), nil
	case Bzip2:
		dec, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, fmt.Errorf("bzip2 decoder: %w", err)
		}
		return dec, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case XZ:
		dec, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz decoder: %w", err)
		}
		return io.NopCloser(dec), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}
