package streampress

import (
	"errors"
	"fmt"
	"io"
)

// ErrBufferTooSmall is returned by a BlockEngine when the provided
// destination buffer is insufficient to hold the output. The BlockWriter
// uses it to trigger scratch buffer growth.
var ErrBufferTooSmall = errors.New("destination buffer too small")

// ErrNotCompressible is returned by a BlockEngine when compressing the
// input would expand it. The BlockWriter forwards the original bytes
// verbatim instead; round-tripping in this mode relies on the engine's
// block format being self-describing.
var ErrNotCompressible = errors.New("input not compressible")

// IsBufferTooSmall is a helper to detect capacity failures.
func IsBufferTooSmall(err error) bool {
	return errors.Is(err, ErrBufferTooSmall)
}

// BlockEngine compresses whole blocks into a caller-supplied buffer
// ("into" semantics). CompressBlock returns the filled prefix of dst,
// ErrBufferTooSmall when dst cannot hold the output, ErrNotCompressible
// when the input would expand, or any other error for a fatal engine
// failure.
type BlockEngine interface {
	CompressBlock(dst, src []byte) ([]byte, error)
}

const (
	defaultScratchSize    = 8 << 10
	defaultMaxScratchSize = 1 << 30
)

// BlockWriter compresses each Write through a BlockEngine into a reusable
// scratch buffer before forwarding it to the sink. The engine's capacity
// and compressibility signals are resolved internally and never surface
// to the caller: a too-small scratch doubles (up to a ceiling) and the
// write retries; a not-compressible block is forwarded uncompressed.
//
// Block output carries no trailer, so Close is a no-op and the writer
// needs no finalization.
type BlockWriter struct {
	engine  BlockEngine
	sink    io.Writer
	scratch []byte
	max     int
}

// BlockOption configures a BlockWriter
type BlockOption interface {
	apply(*BlockWriter)
}

// blockOptFunc wraps a function as a BlockOption
type blockOptFunc func(*BlockWriter)

func (f blockOptFunc) apply(w *BlockWriter) {
	f(w)
}

// WithScratchSize sets the initial compression buffer size (default: 8 KiB)
func WithScratchSize(n int) BlockOption {
	return blockOptFunc(func(w *BlockWriter) {
		if n > 0 {
			w.scratch = make([]byte, n)
		}
	})
}

// WithMaxScratchSize caps scratch buffer growth (default: 1 GiB).
// A block whose compressed form exceeds the cap fails with an explicit
// error instead of growing without bound.
func WithMaxScratchSize(n int) BlockOption {
	return blockOptFunc(func(w *BlockWriter) {
		if n > 0 {
			w.max = n
		}
	})
}

// NewBlockWriter creates a block-compressing writer over engine and w.
func NewBlockWriter(w io.Writer, engine BlockEngine, opts ...BlockOption) *BlockWriter {
	bw := &BlockWriter{
		engine:  engine,
		sink:    w,
		scratch: make([]byte, defaultScratchSize),
		max:     defaultMaxScratchSize,
	}
	for _, opt := range opts {
		opt.apply(bw)
	}
	return bw
}

// Write compresses p as one block and forwards it to the sink.
func (w *BlockWriter) Write(p []byte) (int, error) {
	for {
		out, err := w.engine.CompressBlock(w.scratch, p)
		switch {
		case err == nil:
			if _, err := w.sink.Write(out); err != nil {
				return 0, err
			}
			return len(p), nil
		case errors.Is(err, ErrNotCompressible):
			return w.sink.Write(p)
		case IsBufferTooSmall(err):
			if len(w.scratch) >= w.max {
				return 0, fmt.Errorf("compressed block exceeds %d byte scratch limit", w.max)
			}
			next := len(w.scratch) * 2
			if next > w.max {
				next = w.max
			}
			w.scratch = make([]byte, next)
		default:
			return 0, fmt.Errorf("block compression: %w", err)
		}
	}
}

// Flush flushes the underlying sink if it supports flushing.
func (w *BlockWriter) Flush() error {
	if f, ok := w.sink.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close is a no-op: block output has no trailer to finalize.
func (w *BlockWriter) Close() error {
	return nil
}
