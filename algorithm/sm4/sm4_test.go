package sm4

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// GB/T 32907-2016 example 1.
func TestStandardVector(t *testing.T) {
	key, _ := hex.DecodeString("0123456789abcdeffedcba9876543210")
	want, _ := hex.DecodeString("681edf34d206965e86b3e94f536e4246")

	k := New()
	require.NoError(t, k.SetEncryptKey(key))
	got := make([]byte, BlockSize)
	require.NoError(t, k.Encrypt(got, key))
	assert.Equal(t, want, got)

	require.NoError(t, k.SetDecryptKey(key))
	require.NoError(t, k.Decrypt(got, got))
	assert.Equal(t, key, got)
}

func TestChecks(t *testing.T) {
	k := New()
	assert.ErrorIs(t, k.Encrypt(make([]byte, 16), make([]byte, 16)), crypterr.ErrNoKey)
	assert.ErrorIs(t, k.SetEncryptKey(make([]byte, 15)), crypterr.ErrKeyLen)
	require.NoError(t, k.SetEncryptKey(make([]byte, 16)))
	assert.ErrorIs(t, k.Encrypt(make([]byte, 16), make([]byte, 17)), crypterr.ErrInputLen)
	assert.ErrorIs(t, k.Decrypt(make([]byte, 16), make([]byte, 32)), crypterr.ErrBuffLenNotEnough)
	k.Clean()
	assert.ErrorIs(t, k.Decrypt(make([]byte, 16), make([]byte, 16)), crypterr.ErrNoKey)
}
