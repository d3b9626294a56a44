package streampress

import (
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"
)

var errWriterFinalized = errors.New("write on finalized compression stream")

// lz4Writer owns the frame encoder through an optional slot: the first
// Close takes the encoder out (leaving nil behind), closes it, and then
// best-effort flushes the raw sink. An emptied slot makes any further
// Close a no-op, so the frame trailer and content checksum are written
// exactly once no matter how many times teardown runs.
type lz4Writer struct {
	enc  *lz4.Writer // nil once finalized
	sink io.Writer
}

func newLZ4Writer(w io.Writer, ps ParamSet) (*lz4Writer, error) {
	mode := ps.GetString("block_mode", "linked")
	switch mode {
	case "linked", "independent":
	default:
		log.Debug("unrecognized lz4 block_mode, using linked", "block_mode", mode)
	}
	enc := lz4.NewWriter(w)
	// Content checksums are always on. Concurrency 1 keeps writes ordered
	// and each block flushed as it completes. The v4 frame encoder emits
	// independent blocks for either block_mode; the frame header records
	// the dependency mode, so decoders are unaffected.
	err := enc.Apply(
		lz4.ChecksumOption(true),
		lz4.ConcurrencyOption(1),
		lz4.CompressionLevelOption(lz4Level(GetParsed(ps, "level", 1))),
	)
	if err != nil {
		return nil, err
	}
	return &lz4Writer{enc: enc, sink: w}, nil
}

// lz4Level maps the 0-16 parameter range onto the encoder's level ladder:
// 0 is the fast path, 1-9 the HC levels, and anything above 9 saturates
// at the highest HC level.
func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level <= 0:
		return lz4.Fast
	case level >= 9:
		return lz4.Level9
	default:
		return lz4.CompressionLevel(1 << (8 + level))
	}
}

func (w *lz4Writer) Write(p []byte) (int, error) {
	if w.enc == nil {
		return 0, errWriterFinalized
	}
	return w.enc.Write(p)
}

// Flush writes any buffered block to the sink without ending the frame.
func (w *lz4Writer) Flush() error {
	if w.enc == nil {
		return errWriterFinalized
	}
	return w.enc.Flush()
}

// Close finalizes the frame and then flushes the raw sink if it supports
// flushing. The encoder close error propagates; a sink flush failure is
// logged and swallowed, since implicit teardown has no caller positioned
// to observe it.
func (w *lz4Writer) Close() error {
	enc := w.enc
	if enc == nil {
		return nil
	}
	w.enc = nil
	err := enc.Close()
	if f, ok := w.sink.(flusher); ok {
		if ferr := f.Flush(); ferr != nil {
			log.Warn("sink flush during lz4 finalization failed", "error", ferr)
		}
	}
	return err
}
