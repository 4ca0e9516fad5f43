package symmetric

import (
	"crypto/aes"
	"crypto/cipher"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// cfb8Ref is CFB with 8-bit segments written directly from SP 800-38A.
func cfb8Ref(b cipher.Block, iv, in []byte, enc bool) []byte {
	reg := append([]byte(nil), iv...)
	o := make([]byte, b.BlockSize())
	out := make([]byte, len(in))
	for i, x := range in {
		b.Encrypt(o, reg)
		out[i] = x ^ o[0]
		ct := out[i]
		if !enc {
			ct = x
		}
		reg = append(reg[1:], ct)
	}
	return out
}

// cfb1Ref is CFB with 1-bit segments using a big.Int shift register.
func cfb1Ref(b cipher.Block, iv, in []byte, enc bool) []byte {
	bs := b.BlockSize()
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bs*8)), big.NewInt(1))
	reg := new(big.Int).SetBytes(iv)
	regBytes := make([]byte, bs)
	o := make([]byte, bs)
	out := make([]byte, len(in))
	for i := 0; i < len(in)*8; i++ {
		b.Encrypt(o, reg.FillBytes(regBytes))
		shift := uint(7 - i%8)
		inBit := (in[i/8] >> shift) & 1
		outBit := inBit ^ (o[0] >> 7)
		out[i/8] |= outBit << shift
		ct := outBit
		if !enc {
			ct = inBit
		}
		reg.Lsh(reg, 1).Or(reg, big.NewInt(int64(ct))).And(reg, mask)
	}
	return out
}

func newCFB(t *testing.T, id CipherAlgID, key, iv []byte, enc bool, bits uint32) Cipher {
	t.Helper()
	c := newCipher(t, id, key, iv, enc, PaddingNone)
	require.NoError(t, c.Ctrl(CtrlSetFeedbackSize, bits))
	return c
}

func TestCFB128MatchesStdlib(t *testing.T) {
	key, iv := seq(16, 0x31), seq(16, 0x71)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	for _, size := range []int{1, 15, 16, 17, 61} {
		pt := seq(size, 3)
		want := make([]byte, size)
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(want, pt)

		for _, chunk := range []int{0, 1, 5} {
			ct := runChunks(t, newCipher(t, AES128CFB, key, iv, true, PaddingNone), pt, chunk)
			require.Equal(t, want, ct, "size=%d chunk=%d", size, chunk)
			got := runChunks(t, newCipher(t, AES128CFB, key, iv, false, PaddingNone), ct, chunk)
			assert.Equal(t, pt, got, "size=%d chunk=%d", size, chunk)
		}
	}
}

func TestCFB8MatchesReference(t *testing.T) {
	key, iv := seq(32, 0x01), seq(16, 0xF0)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	pt := seq(37, 0x20)
	want := cfb8Ref(block, iv, pt, true)

	ct := runChunks(t, newCFB(t, AES256CFB, key, iv, true, 8), pt, 4)
	require.Equal(t, want, ct)
	assert.Equal(t, pt, cfb8Ref(block, iv, ct, false))
	assert.Equal(t, pt, runChunks(t, newCFB(t, AES256CFB, key, iv, false, 8), ct, 0))
}

func TestCFB1MatchesReference(t *testing.T) {
	key, iv := seq(16, 0x44), seq(16, 0x99)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	pt := seq(9, 0xC3)
	want := cfb1Ref(block, iv, pt, true)

	ct := runChunks(t, newCFB(t, AES128CFB, key, iv, true, 1), pt, 0)
	require.Equal(t, want, ct)
	assert.Equal(t, want, runChunks(t, newCFB(t, AES128CFB, key, iv, true, 1), pt, 1),
		"byte-at-a-time calls continue the same bit stream")
	assert.Equal(t, pt, runChunks(t, newCFB(t, AES128CFB, key, iv, false, 1), ct, 2))
}

func TestCFBFirstBitAgreesAcrossWidths(t *testing.T) {
	key, iv := seq(16, 0x05), seq(16, 0x06)
	pt := []byte{0xA5}
	var first []byte
	for _, bits := range []uint32{1, 8, 128} {
		ct := runChunks(t, newCFB(t, AES128CFB, key, iv, true, bits), pt, 0)
		first = append(first, ct[0]>>7)
	}
	assert.Equal(t, first[0], first[1])
	assert.Equal(t, first[0], first[2])

	// Width 8 and 128 share the whole first keystream byte.
	c8 := runChunks(t, newCFB(t, AES128CFB, key, iv, true, 8), pt, 0)
	c128 := runChunks(t, newCFB(t, AES128CFB, key, iv, true, 128), pt, 0)
	assert.Equal(t, c8, c128)
}

func TestCFBFeedbackCtrl(t *testing.T) {
	c := newCipher(t, AES128CFB, seq(16, 0), seq(16, 0), true, PaddingNone)

	var bits uint32
	require.NoError(t, c.Ctrl(CtrlGetFeedbackSize, &bits))
	assert.Equal(t, uint32(128), bits)

	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, uint32(64)), crypterr.ErrFeedbackSize)
	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, uint32(7)), crypterr.ErrFeedbackSize)
	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, 8), crypterr.ErrInputLen)
	assert.ErrorIs(t, c.Ctrl(CtrlGetFeedbackSize, bits), crypterr.ErrInvalidArg)

	require.NoError(t, c.Ctrl(CtrlSetFeedbackSize, uint32(8)))
	require.NoError(t, c.Ctrl(CtrlGetFeedbackSize, &bits))
	assert.Equal(t, uint32(8), bits)

	var bs uint32
	require.NoError(t, c.Ctrl(CtrlGetBlockSize, &bs))
	assert.Equal(t, uint32(1), bs)

	assert.ErrorIs(t, c.Ctrl(CtrlSetTagLen, uint32(16)), crypterr.ErrCtrlType)

	c.DeInit()
	require.NoError(t, c.Ctrl(CtrlGetFeedbackSize, &bits))
	assert.Equal(t, uint32(128), bits, "DeInit restores the default width")
}

func TestCFBSM4OnlyFullBlockFeedback(t *testing.T) {
	c := newCipher(t, SM4CFB, seq(16, 0), seq(16, 0), true, PaddingNone)
	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, uint32(8)), crypterr.ErrFeedbackSizeNotSupport)
	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, uint32(1)), crypterr.ErrFeedbackSizeNotSupport)
	assert.NoError(t, c.Ctrl(CtrlSetFeedbackSize, uint32(128)))
}

func TestCFBSixtyFourBitBlock(t *testing.T) {
	key, iv := seq(16, 0x12), seq(8, 0x34)
	c := newCipher(t, RC5CFB, key, iv, true, PaddingNone)

	var bits uint32
	require.NoError(t, c.Ctrl(CtrlGetFeedbackSize, &bits))
	assert.Equal(t, uint32(64), bits)
	assert.ErrorIs(t, c.Ctrl(CtrlSetFeedbackSize, uint32(128)), crypterr.ErrFeedbackSize)

	pt := seq(29, 0x50)
	ct := runChunks(t, c, pt, 3)
	got := runChunks(t, newCipher(t, RC5CFB, key, iv, false, PaddingNone), ct, 0)
	assert.Equal(t, pt, got)
}

func TestCFBReinitResetsOffset(t *testing.T) {
	key, iv := seq(16, 0x0A), seq(16, 0x0B)
	msg := seq(40, 0x60)
	want := runChunks(t, newCipher(t, AES128CFB, key, iv, true, PaddingNone), msg, 0)

	c := newCipher(t, AES128CFB, key, iv, true, PaddingNone)
	out := make([]byte, 64)
	_, err := c.Update(out, seq(5, 0))
	require.NoError(t, err)
	require.NoError(t, c.Ctrl(CtrlReinitStatus, iv))

	n, err := c.Update(out, msg)
	require.NoError(t, err)
	assert.Equal(t, want, out[:n])
}

func TestCFBInPlace(t *testing.T) {
	key, iv := seq(16, 0x0A), seq(16, 0x0B)
	pt := seq(33, 0x60)
	want := runChunks(t, newCipher(t, AES128CFB, key, iv, true, PaddingNone), pt, 0)

	buf := append([]byte(nil), pt...)
	c := newCipher(t, AES128CFB, key, iv, true, PaddingNone)
	_, err := c.Update(buf, buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf)

	d := newCipher(t, AES128CFB, key, iv, false, PaddingNone)
	_, err = d.Update(buf, buf)
	require.NoError(t, err)
	assert.Equal(t, pt, buf)
}

func TestStreamProcessLengths(t *testing.T) {
	c := newCipher(t, AES128CFB, seq(16, 0), seq(16, 0), true, PaddingNone)
	n, err := c.Update(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = c.Update(make([]byte, 3), seq(4, 0))
	assert.ErrorIs(t, err, crypterr.ErrBuffLenNotEnough)

	buf := seq(20, 0)
	_, err = c.Update(buf[2:], buf[:10])
	assert.ErrorIs(t, err, crypterr.ErrInvalidArg)
}
