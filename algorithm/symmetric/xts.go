package symmetric

import (
	"crypto/subtle"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// xtsCtx is XTS with ciphertext stealing. iv holds the running tweak. Update
// keeps the last full block and any partial tail in data because stealing
// rewrites them in Final.
type xtsCtx struct {
	*modeCtx
	tweakPrim Primitive
	data      []byte
	dataLen   int
}

func newXTSCtx(mc *modeCtx) (*xtsCtx, error) {
	if mc.blockSize() != 16 {
		return nil, crypterr.ErrAlgID
	}
	tp, err := mc.method.NewCtx()
	if err != nil {
		return nil, err
	}
	return &xtsCtx{modeCtx: mc, tweakPrim: tp, data: make([]byte, 2*mc.blockSize())}, nil
}

// Init takes the data key followed by the tweak key.
func (c *xtsCtx) Init(key, iv []byte, enc bool) error {
	kl := c.method.keyLen
	if key == nil {
		return crypterr.ErrNullInput
	}
	if len(key) != 2*kl {
		return crypterr.ErrKeyLen
	}
	if subtle.ConstantTimeCompare(key[:kl], key[kl:]) == 1 {
		return crypterr.ErrInvalidArg
	}
	if err := c.setKey(key[:kl], enc); err != nil {
		return err
	}
	if err := c.tweakPrim.SetEncryptKey(key[kl:]); err != nil {
		return err
	}
	return c.setTweak(iv)
}

func (c *xtsCtx) setTweak(iv []byte) error {
	if err := c.setIV(iv); err != nil {
		return err
	}
	clear(c.data)
	c.dataLen = 0
	return c.tweakPrim.Encrypt(c.iv, c.iv)
}

// mulAlpha multiplies the little-endian tweak by x in GF(2^128).
func mulAlpha(t []byte) {
	var carry byte
	for i := range t {
		next := t[i] >> 7
		t[i] = t[i]<<1 | carry
		carry = next
	}
	if carry != 0 {
		t[0] ^= 0x87
	}
}

// cryptBlock runs one XTS block under tweak t.
func (c *xtsCtx) cryptBlock(dst, src, t []byte, enc bool) error {
	subtle.XORBytes(c.buf, src, t)
	var err error
	if enc {
		err = c.prim.Encrypt(c.buf, c.buf)
	} else {
		err = c.prim.Decrypt(c.buf, c.buf)
	}
	if err != nil {
		return err
	}
	subtle.XORBytes(dst, c.buf, t)
	return nil
}

func (c *xtsCtx) cryptBlocks(dst, src []byte) error {
	bs := c.blockSize()
	for i := 0; i < len(src); i += bs {
		if err := c.cryptBlock(dst[i:i+bs], src[i:i+bs], c.iv, c.enc); err != nil {
			return err
		}
		mulAlpha(c.iv)
	}
	return nil
}

func (c *xtsCtx) Update(dst, src []byte) (int, error) {
	bs := c.blockSize()
	total := c.dataLen + len(src)
	n := 0
	if total > bs {
		n = (total - bs) / bs * bs
	}
	if len(dst) < n {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	if anyOverlap(dst, src) && (c.dataLen > 0 || inexactOverlap(dst, src)) {
		return 0, crypterr.ErrInvalidArg
	}

	out := 0
	for out < n && c.dataLen > 0 {
		if c.dataLen < bs {
			k := copy(c.data[c.dataLen:bs], src)
			c.dataLen += k
			src = src[k:]
		}
		if err := c.cryptBlocks(dst[out:out+bs], c.data[:bs]); err != nil {
			return out, err
		}
		out += bs
		c.dataLen = copy(c.data, c.data[bs:c.dataLen])
	}
	if m := n - out; m > 0 {
		if err := c.cryptBlocks(dst[out:n], src[:m]); err != nil {
			return out, err
		}
		src = src[m:]
		out = n
	}
	c.dataLen += copy(c.data[c.dataLen:], src)
	return out, nil
}

func (c *xtsCtx) Final(dst []byte) (int, error) {
	bs := c.blockSize()
	rem := c.dataLen
	if rem == 0 {
		return 0, nil
	}
	if rem < bs {
		return 0, crypterr.ErrInputLen
	}
	if len(dst) < rem {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	m := rem - bs
	if _, err := BlockPadding(c.algID, PaddingNone, bs, c.data[bs:], m); err != nil {
		return 0, err
	}
	defer func() {
		clear(c.data)
		c.dataLen = 0
	}()
	if m == 0 {
		return bs, c.cryptBlocks(dst[:bs], c.data[:bs])
	}

	var cc, pp [16]byte
	last, tail := c.data[:bs], c.data[bs:rem]
	if c.enc {
		if err := c.cryptBlock(cc[:], last, c.iv, true); err != nil {
			return 0, err
		}
		mulAlpha(c.iv)
		copy(pp[:], tail)
		copy(pp[m:], cc[m:])
		copy(dst[bs:rem], cc[:m])
		if err := c.cryptBlock(dst[:bs], pp[:], c.iv, true); err != nil {
			return 0, err
		}
	} else {
		var cur [16]byte
		copy(cur[:], c.iv)
		mulAlpha(c.iv)
		if err := c.cryptBlock(pp[:], last, c.iv, false); err != nil {
			return 0, err
		}
		copy(cc[:], tail)
		copy(cc[m:], pp[m:])
		copy(dst[bs:rem], pp[:m])
		if err := c.cryptBlock(dst[:bs], cc[:], cur[:], false); err != nil {
			return 0, err
		}
		clear(cur[:])
	}
	mulAlpha(c.iv)
	clear(cc[:])
	clear(pp[:])
	return rem, nil
}

func (c *xtsCtx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlReinitStatus:
		iv, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		return c.setTweak(iv)
	case CtrlGetBlockSize:
		return putUint32Ctrl(val, uint32(c.blockSize()))
	default:
		return crypterr.ErrCtrlType
	}
}

func (c *xtsCtx) DeInit() {
	clear(c.data)
	c.dataLen = 0
	c.tweakPrim.Clean()
	c.clean()
}

func (c *xtsCtx) Free() {
	c.DeInit()
	c.tweakPrim = nil
	c.free()
}
