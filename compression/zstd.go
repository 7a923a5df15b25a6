package compression

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func CompressZstd(src []byte, output *bytes.Buffer) error {
	enc, err := getZstdEncoder()
	if err != nil {
		return fmt.Errorf("zstd encoder: %s", err.Error())
	}
	defer zstdEncoderPool.Put(enc)

	output.Write(enc.EncodeAll(src, nil))
	return nil
}

func DecompressZstd(src []byte, rawLen int) ([]byte, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %s", err.Error())
	}
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd read: %s", err.Error())
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("zstd read: got %d bytes, expected %d", len(out), rawLen)
	}
	return out, nil
}
