package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() []byte {
	out := make([]byte, 0, 4096)
	for i := 0; i < 4096; i++ {
		out = append(out, byte(i%17))
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	src := payload()

	for _, kind := range []Kind{None, Lz4, Zstd} {
		t.Run(kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Compress(kind, src, &buf))

			if kind != None {
				assert.Less(t, buf.Len(), len(src))
			}

			out, err := Decompress(kind, buf.Bytes(), len(src))
			require.NoError(t, err)
			assert.Equal(t, src, out)
		})
	}
}

func TestDecompressLengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Compress(Zstd, payload(), &buf))

	_, err := Decompress(Zstd, buf.Bytes(), 10)
	assert.Error(t, err)

	_, err = Decompress(None, []byte{1, 2}, 3)
	assert.Error(t, err)

	buf.Reset()
	require.NoError(t, Compress(Lz4, payload(), &buf))

	_, err = Decompress(Lz4, buf.Bytes(), len(payload())+10)
	assert.Error(t, err)

	_, err = Decompress(Lz4, buf.Bytes(), 10)
	assert.Error(t, err)

	_, err = Decompress(Lz4, buf.Bytes(), -1)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{None, Lz4, Zstd} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseKind("snappy")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
