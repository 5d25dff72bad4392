package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	content := []byte(strings.Repeat("# Corner Cafe\n\nGreat **coffee** and *quiet* corners.\n\n", 20))

	for _, name := range []string{NameNone, NameGZip, NameBrotli, NameLZ4} {
		t.Run(name, func(t *testing.T) {
			codec, err := ByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, codec.Name())

			encoded, err := codec.Encode(content)
			require.NoError(t, err)
			if name != NameNone {
				assert.Less(t, len(encoded), len(content))
			}

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, content, decoded)
		})
	}
}

func TestByName(t *testing.T) {
	codec, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, NameNone, codec.Name())

	_, err = ByName("zstd")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
