package idx

import (
	"encoding/binary"
	"fmt"
	"io"
)

// header holds the converted header fields of an IDX file.
// rows and columns stay zero for label headers.
type header struct {
	magic   uint32
	count   uint32
	rows    uint32
	columns uint32
}

// readHeader reads fields big-endian uint32 values from r and converts them
// to host order. The magic number is returned as read, not checked.
func readHeader(r io.Reader, fields int) (header, error) {
	if fields != LabelHeaderFields && fields != ImageHeaderFields {
		return header{}, &DecodeError{
			Op:      "read header",
			Err:     ErrInvalidDimensions,
			Details: fmt.Sprintf("unsupported header field count %d", fields),
		}
	}

	var buf [maxHeaderSize]byte
	raw := buf[:fields*fieldSize]
	if err := readFull(r, raw, "read header"); err != nil {
		return header{}, err
	}

	h := header{
		magic: binary.BigEndian.Uint32(raw[0:4]),
		count: binary.BigEndian.Uint32(raw[4:8]),
	}
	if fields == ImageHeaderFields {
		h.rows = binary.BigEndian.Uint32(raw[8:12])
		h.columns = binary.BigEndian.Uint32(raw[12:16])
	}
	return h, nil
}

// dims returns the shape the header describes for kind.
func (h header) dims(kind Kind) []uint32 {
	if kind == KindImages {
		return []uint32{h.count, h.rows, h.columns}
	}
	return []uint32{h.count}
}
