// Package idx decodes datasets stored in the IDX binary format.
//
// IDX files start with a fixed header of big-endian uint32 fields followed by
// a flat payload of unsigned bytes:
//
//	Image set:
//	  [4 bytes: magic 0x00000803]
//	  [4 bytes: image count]
//	  [4 bytes: rows per image]
//	  [4 bytes: columns per image]
//	  [count*rows*columns bytes: pixels, row-major, images concatenated]
//
//	Label set:
//	  [4 bytes: magic 0x00000801]
//	  [4 bytes: label count]
//	  [count bytes: labels]
//
// Header fields are converted to host byte order as soon as they are read, on
// every host. The payload is read into one buffer sized exactly from the
// validated header; a decode either returns a fully populated DecodedSet or a
// *DecodeError and never a partial result.
//
// Example usage:
//
//	set, err := idx.LoadImageSet(ctx, "data/train-images.idx3-ubyte")
//	if errors.Is(err, idx.ErrBadMagic) {
//	    // wrong file for this decoder
//	}
//	fmt.Println(set.Shape()) // [60000 28 28]
package idx
