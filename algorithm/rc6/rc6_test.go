package rc6

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

func TestKnownAnswer(t *testing.T) {
	vectors := []struct{ key, pt, ct string }{
		{
			"00000000000000000000000000000000",
			"00000000000000000000000000000000",
			"8fc3a53656b1f778c129df4e9848a41e",
		},
		{
			"0123456789abcdef0112233445566778",
			"02132435465768798a9bacbdcedfe0f1",
			"524e192f4715c6231f51f6367ea43f18",
		},
		{
			"000000000000000000000000000000000000000000000000",
			"00000000000000000000000000000000",
			"6cd61bcb190b30384e8a3f168690ae82",
		},
		{
			"0123456789abcdef0112233445566778899aabbccddeeff0",
			"02132435465768798a9bacbdcedfe0f1",
			"688329d019e505041e52e92af95291d4",
		},
		{
			"0000000000000000000000000000000000000000000000000000000000000000",
			"00000000000000000000000000000000",
			"8f5fbd0510d15fa893fa3fda6e857ec2",
		},
		{
			"0123456789abcdef0112233445566778899aabbccddeeff01032547698badcfe",
			"02132435465768798a9bacbdcedfe0f1",
			"c8241816f0d7e48920ad16a1674e5d48",
		},
	}
	for _, v := range vectors {
		key, _ := hex.DecodeString(v.key)
		pt, _ := hex.DecodeString(v.pt)
		want, _ := hex.DecodeString(v.ct)

		c := New(len(key))
		require.NoError(t, c.SetEncryptKey(key))
		got := make([]byte, BlockSize)
		require.NoError(t, c.Encrypt(got, pt))
		assert.Equal(t, want, got, "key %s", v.key)

		back := make([]byte, BlockSize)
		require.NoError(t, c.Decrypt(back, got))
		assert.Equal(t, pt, back)
	}
}

func TestInPlaceMultiBlock(t *testing.T) {
	key := make([]byte, 16)
	src := make([]byte, 3*BlockSize)
	for i := range src {
		src[i] = byte(i)
	}
	c := New(16)
	require.NoError(t, c.SetEncryptKey(key))
	buf := append([]byte(nil), src...)
	require.NoError(t, c.Encrypt(buf, buf))
	require.NoError(t, c.Decrypt(buf, buf))
	assert.Equal(t, src, buf)
}

func TestErrors(t *testing.T) {
	c := New(16)
	assert.ErrorIs(t, c.Encrypt(make([]byte, 16), make([]byte, 16)), crypterr.ErrNoKey)
	assert.ErrorIs(t, c.SetEncryptKey(make([]byte, 24)), crypterr.ErrKeyLen)
	assert.ErrorIs(t, New(20).SetEncryptKey(make([]byte, 20)), crypterr.ErrKeyLen)

	require.NoError(t, c.SetEncryptKey(make([]byte, 16)))
	assert.ErrorIs(t, c.Encrypt(make([]byte, 16), make([]byte, 15)), crypterr.ErrInputLen)
	assert.ErrorIs(t, c.Decrypt(make([]byte, 8), make([]byte, 16)), crypterr.ErrBuffLenNotEnough)
	c.Clean()
	assert.ErrorIs(t, c.Decrypt(make([]byte, 16), make([]byte, 16)), crypterr.ErrNoKey)
}
