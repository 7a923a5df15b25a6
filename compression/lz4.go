package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func CompressLz4(src []byte, output *bytes.Buffer) error {
	zw := lz4.NewWriter(output)

	if _, err := zw.Write(src); err != nil {
		return fmt.Errorf("lz4 write: %s", err.Error())
	}

	flushErr := zw.Flush()
	if flushErr != nil {
		return flushErr
	}

	return zw.Close()
}

// DecompressLz4 reads one lz4 frame and expects exactly rawLen bytes out of
// it. The output grows with the stream rather than trusting rawLen up front.
func DecompressLz4(src []byte, rawLen int) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))

	out, err := io.ReadAll(io.LimitReader(zr, int64(rawLen)+1))
	if err != nil {
		return nil, fmt.Errorf("lz4 read: %s", err.Error())
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("lz4 read: got %d bytes, expected %d", len(out), rawLen)
	}
	return out, nil
}
