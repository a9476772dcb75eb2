package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenSeed_RoundTrip(t *testing.T) {
	t.Parallel()

	seed := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	password := []byte("hunter2")

	sealed, err := sealSeed(seed, password)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), string(seed))

	opened, err := openSeed(sealed, password)
	require.NoError(t, err)
	assert.Equal(t, seed, opened)
}

func TestOpenSeed_WrongPassword(t *testing.T) {
	t.Parallel()

	sealed, err := sealSeed([]byte("seed material"), []byte("hunter2"))
	require.NoError(t, err)

	_, err = openSeed(sealed, []byte("hunter3"))
	require.Error(t, err)
}

func TestOpenSeed_Garbage(t *testing.T) {
	t.Parallel()

	_, err := openSeed([]byte("not an age file"), []byte("hunter2"))
	require.Error(t, err)
}
