// Package binutil provides little-endian field readers/writers with byte-count
// accounting for model persistence.
//
// Every helper returns the number of bytes consumed or produced so callers can
// frame serialized fields themselves. Floating-point values round-trip
// bit-for-bit via their IEEE-754 representation.
package binutil

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer wraps an io.Writer and tracks bytes written.
type Writer struct {
	w   io.Writer
	n   int64
	err error
}

// NewWriter creates a Writer around w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// BytesWritten returns the total number of bytes written so far.
func (w *Writer) BytesWritten() int64 { return w.n }

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(buf []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(buf)
	w.n += int64(n)
	w.err = err
}

// Uint64 writes v in little-endian order.
func (w *Writer) Uint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// Uint32 writes v in little-endian order.
func (w *Writer) Uint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// Float64 writes v as its IEEE-754 bit pattern.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Float32 writes v as its IEEE-754 bit pattern.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(b []byte) {
	w.write(b)
}

// Reader wraps an io.Reader and tracks bytes consumed.
type Reader struct {
	r   io.Reader
	n   int64
	err error
}

// NewReader creates a Reader around r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// BytesRead returns the total number of bytes consumed so far.
func (r *Reader) BytesRead() int64 { return r.n }

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) read(buf []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, buf)
	r.n += int64(n)
	if err != nil {
		// A short field means a truncated model, not a clean EOF.
		if err == io.ErrUnexpectedEOF || (err == io.EOF && len(buf) > 0) {
			r.err = io.ErrUnexpectedEOF
		} else {
			r.err = err
		}
		return false
	}
	return true
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	var buf [8]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	var buf [4]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	buf := make([]byte, n)
	if !r.read(buf) {
		return nil
	}
	return buf
}

// Float64 reads an IEEE-754 float64.
func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Float32 reads an IEEE-754 float32.
func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}
