package eal

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/symmetric"
)

func key(n int) []byte { return bytes.Repeat([]byte{0x42}, n) }

func TestCipherCtxLifecycle(t *testing.T) {
	x, err := NewCipherCtx(symmetric.AES128CBC)
	require.NoError(t, err)
	defer x.Free()
	assert.NotEqual(t, uuid.Nil, x.ID())
	assert.Equal(t, symmetric.AES128CBC, x.AlgID())

	out := make([]byte, 64)
	_, err = x.Update(out, key(16))
	assert.ErrorIs(t, err, crypterr.ErrState)
	_, err = x.Final(out)
	assert.ErrorIs(t, err, crypterr.ErrState)
	assert.ErrorIs(t, x.SetPadding(symmetric.PaddingPKCS7), crypterr.ErrState)

	require.NoError(t, x.Init(key(16), key(16), true))
	require.NoError(t, x.SetPadding(symmetric.PaddingPKCS7))
	p, err := x.GetPadding()
	require.NoError(t, err)
	assert.Equal(t, symmetric.PaddingPKCS7, p)
	bs, err := x.BlockSize()
	require.NoError(t, err)
	assert.Equal(t, 16, bs)

	n, err := x.Update(out, []byte("hello, world"))
	require.NoError(t, err)
	m, err := x.Final(out[n:])
	require.NoError(t, err)
	assert.Equal(t, 16, n+m)

	_, err = x.Update(out, []byte("more"))
	assert.ErrorIs(t, err, crypterr.ErrState, "finished context needs a reinit")
	require.NoError(t, x.Ctrl(symmetric.CtrlReinitStatus, key(16)))
	_, err = x.Update(out, []byte("more"))
	assert.NoError(t, err)

	x.DeInit()
	_, err = x.Update(out, []byte("x"))
	assert.ErrorIs(t, err, crypterr.ErrState)
}

func TestCipherCtxRoundTrip(t *testing.T) {
	pt := []byte("the quick brown fox jumps over the lazy dog")
	for _, alg := range []symmetric.CipherAlgID{symmetric.SM4CBC, symmetric.AES256GCM, symmetric.ChaCha20Poly1305} {
		t.Run(alg.String(), func(t *testing.T) {
			k, iv := key(alg.KeyLen()), bytes.Repeat([]byte{7}, alg.IVLen())
			mode, err := symmetric.ModeOf(alg)
			require.NoError(t, err)
			setPad := func(x *CipherCtx) {
				if mode == symmetric.CBC {
					require.NoError(t, x.SetPadding(symmetric.PaddingPKCS7))
				}
			}

			enc, err := NewCipherCtx(alg)
			require.NoError(t, err)
			defer enc.Free()
			require.NoError(t, enc.Init(k, iv, true))
			setPad(enc)
			ct := make([]byte, len(pt)+32)
			n, err := enc.Update(ct, pt)
			require.NoError(t, err)
			m, err := enc.Final(ct[n:])
			require.NoError(t, err)
			ct = ct[:n+m]

			dec, err := NewCipherCtx(alg)
			require.NoError(t, err)
			defer dec.Free()
			require.NoError(t, dec.Init(k, iv, false))
			setPad(dec)
			got := make([]byte, len(ct)+16)
			n, err = dec.Update(got, ct)
			require.NoError(t, err)
			m, err = dec.Final(got[n:])
			require.NoError(t, err)
			assert.Equal(t, pt, got[:n+m])
		})
	}
}

func TestCipherCtxInitFailureResetsState(t *testing.T) {
	x, err := NewCipherCtx(symmetric.AES128CTR)
	require.NoError(t, err)
	defer x.Free()

	require.NoError(t, x.Init(key(16), key(16), true))
	assert.ErrorIs(t, x.Init(key(16), key(4), true), crypterr.ErrIVLen)
	_, err = x.Update(make([]byte, 4), key(4))
	assert.ErrorIs(t, err, crypterr.ErrState)
}

func TestNewCipherCtxUnknownAlg(t *testing.T) {
	_, err := NewCipherCtx(symmetric.CipherAlgID(0))
	assert.ErrorIs(t, err, crypterr.ErrAlgID)
}

func TestCipherCtxFreeTwice(t *testing.T) {
	x, err := NewCipherCtx(symmetric.RC5CBC)
	require.NoError(t, err)
	x.Free()
	assert.NotPanics(t, x.Free)
}
