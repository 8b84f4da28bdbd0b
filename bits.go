package dafsa

import (
	"fmt"
	"io"
)

// bitWriter packs values into a byte stream most-significant-bit first.
type bitWriter struct {
	io.Writer
	cache uint8
	used  int
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w, 0, 0}
}

func (w *bitWriter) WriteBits(data uint64, n int) error {
	var mask uint8
	for n > 0 {
		written := n
		if written+w.used > 8 {
			written = 8 - w.used
		}

		mask = uint8(uint16(1<<written) - 1)
		w.used += written
		w.cache = (w.cache << written) | byte(data>>(n-written))&mask

		if w.used == 8 {
			if _, err := w.Write([]byte{w.cache}); err != nil {
				return err
			}
			w.used = 0
		}

		n -= written
	}
	return nil
}

// WriteUvarint writes v in 7-coded form: groups of seven bits, the high
// bit of every byte but the last one set.
func (w *bitWriter) WriteUvarint(v uint64) error {
	shift := 0
	for v>>uint(shift+7) != 0 {
		shift += 7
	}
	for ; shift >= 0; shift -= 7 {
		group := (v >> uint(shift)) & 0x7f
		if shift > 0 {
			group |= 0x80
		}
		if err := w.WriteBits(group, 8); err != nil {
			return err
		}
	}
	return nil
}

// WriteString writes a length-prefixed byte string.
func (w *bitWriter) WriteString(s string) error {
	if err := w.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := w.WriteBits(uint64(s[i]), 8); err != nil {
			return err
		}
	}
	return nil
}

func (w *bitWriter) Flush() error {
	if w.used > 0 {
		if _, err := w.Write([]byte{w.cache << (8 - w.used)}); err != nil {
			return err
		}
		w.used = 0
	}
	return nil
}

var maskTop = []byte{
	0xff, 0x7f, 0x3f, 0x1f, 0x0f, 0x07, 0x03, 0x01, 0x00,
}

// bitSeeker reads bit fields from arbitrary bit offsets of an io.ReaderAt.
type bitSeeker struct {
	io.ReaderAt
	p      int64
	buffer []byte
	err    error
}

func newBitSeeker(r io.ReaderAt) *bitSeeker {
	return &bitSeeker{ReaderAt: r, buffer: make([]byte, 1)}
}

func (r *bitSeeker) nextByte() byte {
	if _, err := r.ReadAt(r.buffer, r.p>>3); err != nil && r.err == nil {
		r.err = fmt.Errorf("dafsa: reading bit stream at byte %d: %w", r.p>>3, err)
	}
	return r.buffer[0]
}

func (r *bitSeeker) ReadBits(n int64) uint64 {
	// fast path: the bits lie within the current byte
	if r.p&7+n <= 8 {
		ret := uint64((r.nextByte() & maskTop[r.p&7]) >> (8 - r.p&7 - n))
		r.p += n
		return ret
	}

	result := uint64(r.nextByte() & maskTop[r.p&7])

	l := 8 - r.p&7
	r.p += l
	n -= l

	for n >= 8 {
		result = (result << 8) | uint64(r.nextByte())
		r.p += 8
		n -= 8
	}

	if n > 0 {
		r.p += n
		result = (result << n) | uint64(r.nextByte()>>(8-n))
	}

	return result
}

// ReadUvarint reads a 7-coded value written by WriteUvarint.
func (r *bitSeeker) ReadUvarint() uint64 {
	var result uint64
	for {
		data := r.ReadBits(8)
		result = result<<7 | data&0x7f
		if data&0x80 == 0 {
			return result
		}
	}
}

// ReadString reads a length-prefixed byte string.
func (r *bitSeeker) ReadString() string {
	n := r.ReadUvarint()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.ReadBits(8))
	}
	return string(buf)
}

func (r *bitSeeker) Seek(p int64) {
	r.p = p
}

func (r *bitSeeker) Tell() int64 {
	return r.p
}

// Err returns the first read error encountered, if any.
func (r *bitSeeker) Err() error {
	return r.err
}
