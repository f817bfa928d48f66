package idx

import "fmt"

// Format constants.
const (
	MagicImages uint32 = 0x00000803 // unsigned byte, 3 dimensions
	MagicLabels uint32 = 0x00000801 // unsigned byte, 1 dimension

	ImageHeaderFields = 4 // magic, count, rows, columns
	LabelHeaderFields = 2 // magic, count

	fieldSize     = 4
	maxHeaderSize = ImageHeaderFields * fieldSize
)

// Kind identifies the record shape of an IDX file.
type Kind int

// Supported kinds.
const (
	KindUnknown Kind = iota
	KindImages
	KindLabels
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindImages:
		return "images"
	case KindLabels:
		return "labels"
	default:
		return "unknown"
	}
}

// Magic returns the magic number files of this kind start with.
func (k Kind) Magic() uint32 {
	switch k {
	case KindImages:
		return MagicImages
	case KindLabels:
		return MagicLabels
	default:
		return 0
	}
}

// HeaderFields returns the number of uint32 header fields, magic included.
func (k Kind) HeaderFields() int {
	switch k {
	case KindImages:
		return ImageHeaderFields
	case KindLabels:
		return LabelHeaderFields
	default:
		return 0
	}
}

// KindOf maps a magic number to its kind.
func KindOf(magic uint32) Kind {
	switch magic {
	case MagicImages:
		return KindImages
	case MagicLabels:
		return KindLabels
	default:
		return KindUnknown
	}
}

// FormatMagic renders a magic number the way it appears on disk.
func FormatMagic(magic uint32) string {
	return fmt.Sprintf("0x%08X", magic)
}
