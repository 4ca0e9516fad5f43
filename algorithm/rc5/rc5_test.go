package rc5

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

func TestKnownAnswer(t *testing.T) {
	vectors := []struct{ key, pt, ct string }{
		{"00000000000000000000000000000000", "0000000000000000", "21a5dbee154b8f6d"},
		{"915f4619be41b2516355a50110a9ce91", "21a5dbee154b8f6d", "f7c013ac5b2b8952"},
	}
	for _, v := range vectors {
		key, _ := hex.DecodeString(v.key)
		pt, _ := hex.DecodeString(v.pt)
		want, _ := hex.DecodeString(v.ct)

		c := New(DefaultRounds)
		require.NoError(t, c.SetEncryptKey(key))
		got := make([]byte, BlockSize)
		require.NoError(t, c.Encrypt(got, pt))
		assert.Equal(t, want, got, "key %s", v.key)

		require.NoError(t, c.SetDecryptKey(key))
		back := make([]byte, BlockSize)
		require.NoError(t, c.Decrypt(back, got))
		assert.Equal(t, pt, back)
	}
}

func TestRoundTripKeyLengths(t *testing.T) {
	src := make([]byte, 4*BlockSize)
	for i := range src {
		src[i] = byte(i * 7)
	}
	for _, n := range []int{1, 5, 16, 255} {
		key := make([]byte, n)
		for i := range key {
			key[i] = byte(i + n)
		}
		c := New(16)
		require.NoError(t, c.SetEncryptKey(key))
		buf := append([]byte(nil), src...)
		require.NoError(t, c.Encrypt(buf, buf))
		assert.NotEqual(t, src, buf)
		require.NoError(t, c.Decrypt(buf, buf))
		assert.Equal(t, src, buf, "key len %d", n)
	}
}

func TestErrors(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultRounds, c.rounds)
	assert.ErrorIs(t, c.Encrypt(make([]byte, 8), make([]byte, 8)), crypterr.ErrNoKey)
	assert.ErrorIs(t, c.SetEncryptKey(nil), crypterr.ErrKeyLen)
	assert.ErrorIs(t, c.SetEncryptKey(make([]byte, 256)), crypterr.ErrKeyLen)

	require.NoError(t, c.SetEncryptKey(make([]byte, 16)))
	assert.ErrorIs(t, c.Encrypt(make([]byte, 8), make([]byte, 7)), crypterr.ErrInputLen)
	assert.ErrorIs(t, c.Encrypt(make([]byte, 8), make([]byte, 16)), crypterr.ErrBuffLenNotEnough)

	c.Clean()
	assert.Nil(t, c.s)
	assert.ErrorIs(t, c.Decrypt(make([]byte, 8), make([]byte, 8)), crypterr.ErrNoKey)
}
