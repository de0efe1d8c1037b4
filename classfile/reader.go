package classfile

import "encoding/binary"

// reader is a bounds-checked big-endian cursor over an immutable buffer.
// A failed read leaves the cursor where it was.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) Offset() int    { return r.off }
func (r *reader) Len() int       { return len(r.data) }
func (r *reader) Remaining() int { return len(r.data) - r.off }

func (r *reader) need(n int) error {
	if n < 0 || n > r.Remaining() {
		return outOfBounds(r.off, n, r.Remaining())
	}
	return nil
}

func (r *reader) U1() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *reader) U2() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) U4() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) U8() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// Bytes returns the next n bytes as a sub-slice of the input. The slice is
// capped so appending to it can never write into the following data.
func (r *reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// u2s reads count big-endian u2 values.
func (r *reader) u2s(count uint16) ([]uint16, error) {
	if err := r.need(int(count) * 2); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := range out {
		out[i], _ = r.U2()
	}
	return out, nil
}
