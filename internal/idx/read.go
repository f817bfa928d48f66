package idx

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads fill tolerates in a row.
const maxEmptyReads = 100

// fill reads from r until buf is full. It returns the number of bytes read
// and, when that is short of len(buf), the reason: io.EOF, the reader's own
// error, or io.ErrNoProgress.
//
// It never asks r for more than the remaining length, so bytes following the
// declared payload stay unread.
func fill(r io.Reader, buf []byte) (int, error) {
	var (
		n     int
		empty int
	)
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if n == len(buf) {
			return n, nil
		}

		switch {
		case err != nil:
			return n, err
		case m == 0:
			empty++
			if empty >= maxEmptyReads {
				return n, io.ErrNoProgress
			}
		default:
			empty = 0
		}
	}
	return n, nil
}

// readFull reads exactly len(buf) bytes from r into buf. A stream that ends
// early, fails, or stops making progress yields ErrTruncatedStream.
func readFull(r io.Reader, buf []byte, op string) error {
	n, err := fill(r, buf)
	if n == len(buf) {
		return nil
	}
	return truncated(op, n, len(buf), err)
}

// truncated reports a short read of got out of want bytes. A plain end of
// stream carries no cause.
func truncated(op string, got, want int, err error) error {
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return &DecodeError{
		Op:      op,
		Err:     ErrTruncatedStream,
		Cause:   err,
		Details: fmt.Sprintf("got %d of %d bytes", got, want),
	}
}
