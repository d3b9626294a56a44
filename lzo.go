package streampress

import (
	"bytes"
	"fmt"

	lzo "github.com/rasky/go-lzo"
)

// LZOEngine is a BlockEngine over the pure-Go LZO1X implementation.
// LZO blocks carry no self-describing frame, so the engine is not part
// of the codec set reachable through NewWriter/NewReader; pair it with a
// BlockWriter directly and track block geometry on the side.
type LZOEngine struct{}

// NewLZOEngine returns an LZO1X block engine.
func NewLZOEngine() LZOEngine {
	return LZOEngine{}
}

// CompressBlock compresses src into dst. A block that would expand is
// reported as ErrNotCompressible; output that does not fit dst as
// ErrBufferTooSmall.
func (LZOEngine) CompressBlock(dst, src []byte) ([]byte, error) {
	out := lzo.Compress1X(src)
	if len(src) > 0 && len(out) >= len(src) {
		return nil, ErrNotCompressible
	}
	if len(out) > len(dst) {
		return nil, ErrBufferTooSmall
	}
	n := copy(dst, out)
	return dst[:n], nil
}

// DecompressBlock decompresses a single compressed block. decodedSize is
// the expected size of the decompressed output.
func (LZOEngine) DecompressBlock(src []byte, decodedSize int) ([]byte, error) {
	out, err := lzo.Decompress1X(bytes.NewReader(src), len(src), decodedSize)
	if err != nil {
		return nil, fmt.Errorf("lzo decompress: %w", err)
	}
	return out, nil
}
