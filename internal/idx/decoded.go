package idx

import "fmt"

// DecodedSet is the result of a successful decode: the payload buffer and the
// shape needed to interpret it.
//
// A DecodedSet is read-only. Accessors return copies or scalars; the backing
// buffer leaves the set only through TakeBuffer, after which the set is
// released and reports a zero length.
type DecodedSet struct {
	kind    Kind
	data    []byte
	count   int
	rows    int // zero for label sets
	columns int // zero for label sets
}

// Kind returns whether the set holds images or labels.
func (s *DecodedSet) Kind() Kind {
	return s.kind
}

// Count returns the number of images or labels.
func (s *DecodedSet) Count() int {
	return s.count
}

// Rows returns the rows per image, or 0 for label sets.
func (s *DecodedSet) Rows() int {
	return s.rows
}

// Columns returns the columns per image, or 0 for label sets.
func (s *DecodedSet) Columns() int {
	return s.columns
}

// Shape returns (count, rows, columns) for image sets and (count) for label sets.
func (s *DecodedSet) Shape() []int {
	if s.kind == KindImages {
		return []int{s.count, s.rows, s.columns}
	}
	return []int{s.count}
}

// Len returns the payload length in bytes, or 0 once released.
func (s *DecodedSet) Len() int {
	return len(s.data)
}

// Released reports whether the buffer has been handed off with TakeBuffer.
func (s *DecodedSet) Released() bool {
	return s.data == nil
}

// Bytes returns a copy of the payload.
func (s *DecodedSet) Bytes() []byte {
	if s.data == nil {
		return nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// ImageSize returns rows*columns, the byte length of one image.
func (s *DecodedSet) ImageSize() int {
	return s.rows * s.columns
}

// Image returns a copy of the i-th image in row-major order.
func (s *DecodedSet) Image(i int) ([]byte, error) {
	if err := s.check(KindImages, i); err != nil {
		return nil, err
	}
	size := s.ImageSize()
	out := make([]byte, size)
	copy(out, s.data[i*size:(i+1)*size])
	return out, nil
}

// Pixel returns the pixel at (row, col) of the i-th image.
func (s *DecodedSet) Pixel(i, row, col int) (uint8, error) {
	if err := s.check(KindImages, i); err != nil {
		return 0, err
	}
	if row < 0 || row >= s.rows || col < 0 || col >= s.columns {
		return 0, fmt.Errorf("idx: pixel (%d, %d) out of range for %dx%d image", row, col, s.rows, s.columns)
	}
	return s.data[i*s.ImageSize()+row*s.columns+col], nil
}

// Label returns the i-th label.
func (s *DecodedSet) Label(i int) (uint8, error) {
	if err := s.check(KindLabels, i); err != nil {
		return 0, err
	}
	return s.data[i], nil
}

// TakeBuffer transfers ownership of the payload to the caller and releases
// the set. It returns nil on every call after the first.
func (s *DecodedSet) TakeBuffer() []byte {
	data := s.data
	s.data = nil
	return data
}

func (s *DecodedSet) check(kind Kind, i int) error {
	if s.kind != kind {
		return fmt.Errorf("idx: set holds %s, not %s", s.kind, kind)
	}
	if s.data == nil {
		return fmt.Errorf("idx: %s set has been released", s.kind)
	}
	if i < 0 || i >= s.count {
		return fmt.Errorf("idx: index %d out of range [0, %d)", i, s.count)
	}
	return nil
}

// String implements fmt.Stringer.
func (s *DecodedSet) String() string {
	return fmt.Sprintf("idx.DecodedSet{kind: %s, shape: %v, bytes: %d}", s.kind, s.Shape(), len(s.data))
}
