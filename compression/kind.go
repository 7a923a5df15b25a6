// Package compression wraps the payload compressors the codec can pick from.
package compression

import (
	"bytes"
	"errors"
	"fmt"
)

type Kind uint8

const (
	None Kind = iota
	Lz4
	Zstd
)

var ErrUnknownKind = errors.New("unknown compression")

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Lz4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(k))
	}
}

func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return Lz4, nil
	case "zstd":
		return Zstd, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Compress appends the compressed form of src to output.
func Compress(kind Kind, src []byte, output *bytes.Buffer) error {
	switch kind {
	case None:
		output.Write(src)
		return nil
	case Lz4:
		return CompressLz4(src, output)
	case Zstd:
		return CompressZstd(src, output)
	}
	return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// Decompress restores rawLen bytes from src.
func Decompress(kind Kind, src []byte, rawLen int) ([]byte, error) {
	if rawLen < 0 {
		return nil, fmt.Errorf("negative payload length %d", rawLen)
	}

	switch kind {
	case None:
		if len(src) != rawLen {
			return nil, fmt.Errorf("stored payload has %d bytes, expected %d", len(src), rawLen)
		}
		return src, nil
	case Lz4:
		return DecompressLz4(src, rawLen)
	case Zstd:
		return DecompressZstd(src, rawLen)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
