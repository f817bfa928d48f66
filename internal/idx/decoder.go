package idx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"
)

// DecodeOptions configures a decode.
type DecodeOptions struct {
	// ExpectedMagic overrides the magic number the header must carry.
	// Zero selects the standard constant for the decoded kind.
	ExpectedMagic uint32

	// MaxPayloadBytes caps the payload allocation. Zero means the only bound
	// is what the host can address.
	MaxPayloadBytes int64

	// streamSize is the total number of bytes the stream holds, header
	// included, when known up front. Zero means unknown.
	streamSize int64
}

func (o DecodeOptions) magic(kind Kind) uint32 {
	if o.ExpectedMagic != 0 {
		return o.ExpectedMagic
	}
	return kind.Magic()
}

// DecodeImageSet decodes an image set from r with default options.
func DecodeImageSet(r io.Reader) (*DecodedSet, error) {
	return DecodeImageSetWithOptions(r, DecodeOptions{})
}

// DecodeImageSetWithOptions decodes an image set from r.
//
// The header must hold four fields (magic, count, rows, columns) and the
// payload exactly count*rows*columns bytes. Bytes after the payload are left
// unread.
func DecodeImageSetWithOptions(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	return decode(r, KindImages, opts)
}

// DecodeLabelSet decodes a label set from r with default options.
func DecodeLabelSet(r io.Reader) (*DecodedSet, error) {
	return DecodeLabelSetWithOptions(r, DecodeOptions{})
}

// DecodeLabelSetWithOptions decodes a label set from r.
func DecodeLabelSetWithOptions(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	return decode(r, KindLabels, opts)
}

// Decode reads the magic number from r and decodes an image or label set
// accordingly. opts.ExpectedMagic is ignored.
func Decode(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	var magic [fieldSize]byte
	if err := readFull(r, magic[:], "read header"); err != nil {
		return nil, err
	}

	got := binary.BigEndian.Uint32(magic[:])
	kind := KindOf(got)
	if kind == KindUnknown {
		return nil, &DecodeError{
			Op:      "detect format",
			Err:     ErrBadMagic,
			Details: fmt.Sprintf("got %s, want %s or %s", FormatMagic(got), FormatMagic(MagicImages), FormatMagic(MagicLabels)),
		}
	}

	opts.ExpectedMagic = 0
	return decode(io.MultiReader(bytes.NewReader(magic[:]), r), kind, opts)
}

func decode(r io.Reader, kind Kind, opts DecodeOptions) (*DecodedSet, error) {
	h, err := readHeader(r, kind.HeaderFields())
	if err != nil {
		return nil, err
	}
	return decodePayload(r, kind, h, opts)
}

// decodePayload validates h and reads the payload it describes.
func decodePayload(r io.Reader, kind Kind, h header, opts DecodeOptions) (*DecodedSet, error) {
	op := "decode " + kind.String()

	if want := opts.magic(kind); h.magic != want {
		return nil, &DecodeError{
			Op:      op,
			Err:     ErrBadMagic,
			Details: fmt.Sprintf("got %s, want %s", FormatMagic(h.magic), FormatMagic(want)),
		}
	}

	size, err := payloadSize(kind, h.dims(kind))
	if err != nil {
		return nil, err
	}

	if limit := opts.MaxPayloadBytes; limit > 0 && int64(size) > limit {
		return nil, &DecodeError{
			Op:      "allocate payload",
			Err:     ErrAllocationFailed,
			Details: fmt.Sprintf("%d bytes exceeds limit of %d", size, limit),
		}
	}
	if opts.streamSize > 0 {
		left := opts.streamSize - int64(kind.HeaderFields()*fieldSize)
		if int64(size) > left {
			return nil, truncated("read payload", int(max(left, 0)), size, nil)
		}
	}

	data, err := readPayload(r, size)
	if err != nil {
		return nil, err
	}

	return &DecodedSet{
		kind:    kind,
		data:    data,
		count:   int(h.count),
		rows:    int(h.rows),
		columns: int(h.columns),
	}, nil
}

var dimNames = [...]string{"count", "rows", "columns"}

// payloadSize returns the product of dims, rejecting zero dimensions and
// products that do not fit in an int on this host.
func payloadSize(kind Kind, dims []uint32) (int, error) {
	size := uint64(1)
	for i, d := range dims {
		if d == 0 {
			return 0, &DecodeError{
				Op:      "decode " + kind.String(),
				Err:     ErrInvalidDimensions,
				Details: dimNames[i] + " is zero",
			}
		}
		hi, lo := bits.Mul64(size, uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return 0, &DecodeError{
				Op:      "decode " + kind.String(),
				Err:     ErrInvalidDimensions,
				Details: fmt.Sprintf("shape %v overflows the addressable size", dims),
			}
		}
		size = lo
	}
	return int(size), nil
}

// payloadChunk is the largest payload buffer allocated before any payload
// bytes have arrived. Bigger payloads grow as the stream delivers them, so a
// header declaring more than the stream holds cannot commit that much memory.
const payloadChunk = 1 << 20

// readPayload reads exactly size bytes from r.
func readPayload(r io.Reader, size int) ([]byte, error) {
	buf, err := allocate(min(size, payloadChunk))
	if err != nil {
		return nil, err
	}

	filled := 0
	for {
		n, err := fill(r, buf[filled:])
		filled += n
		if filled < len(buf) {
			return nil, truncated("read payload", filled, size, err)
		}
		if filled == size {
			return buf, nil
		}

		next, err := allocate(len(buf) + min(len(buf), size-len(buf)))
		if err != nil {
			return nil, err
		}
		copy(next, buf)
		buf = next
	}
}

// allocate returns a zeroed buffer of size bytes. A runtime refusal of the
// requested length is reported as ErrAllocationFailed instead of a panic.
func allocate(size int) (buf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			buf = nil
			err = &DecodeError{
				Op:      "allocate payload",
				Err:     ErrAllocationFailed,
				Details: fmt.Sprintf("%d bytes: %v", size, rec),
			}
		}
	}()
	return make([]byte, size), nil
}
