package symmetric

import (
	"crypto/subtle"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	gcmTagSize  = 16
	gcmMaxCtLen = (1<<32 - 2) * gcmBlockSize
)

// gcmCtx is Galois/Counter mode. iv holds the running counter block, buf
// the keystream for it and offset the keystream bytes already used.
type gcmCtx struct {
	*modeCtx
	hash     ghash
	tagMask  [gcmBlockSize]byte
	aadLen   uint64
	ctLen    uint64
	aadSet   bool
	tagLen   int
	tag      [gcmTagSize]byte
	finished bool
}

func newGCMCtx(mc *modeCtx) (*gcmCtx, error) {
	if mc.blockSize() != gcmBlockSize {
		return nil, crypterr.ErrAlgID
	}
	return &gcmCtx{modeCtx: mc, tagLen: gcmTagSize}, nil
}

func (c *gcmCtx) Init(key, iv []byte, enc bool) error {
	if len(iv) == 0 {
		return crypterr.ErrIVLen
	}
	if err := c.setKey(key, true); err != nil {
		return err
	}
	c.enc = enc
	var h [gcmBlockSize]byte
	if err := c.prim.Encrypt(h[:], h[:]); err != nil {
		return err
	}
	c.hash.setKey(h[:])
	clear(h[:])
	return c.start(iv)
}

// start derives J0 from iv and rewinds all per-message state.
func (c *gcmCtx) start(iv []byte) error {
	if len(iv) == 0 {
		return crypterr.ErrIVLen
	}
	c.hash.deriveCounter(c.iv, iv)
	if err := c.prim.Encrypt(c.tagMask[:], c.iv); err != nil {
		return err
	}
	gcmInc32(c.iv)
	c.hash.reset()
	c.offset = 0
	c.aadLen, c.ctLen = 0, 0
	c.aadSet = false
	c.finished = false
	clear(c.tag[:])
	return nil
}

func (c *gcmCtx) Update(dst, src []byte) (int, error) {
	if c.finished {
		return 0, crypterr.ErrState
	}
	if c.ctLen+uint64(len(src)) > gcmMaxCtLen {
		return 0, crypterr.ErrInputLen
	}
	return streamProcess(dst, src, c.crypt)
}

func (c *gcmCtx) crypt(dst, src []byte) error {
	n := len(src)
	if !c.enc {
		c.hash.write(src)
	}
	for len(src) > 0 {
		if c.offset == 0 {
			if err := c.prim.Encrypt(c.buf, c.iv); err != nil {
				return err
			}
			gcmInc32(c.iv)
		}
		k := min(gcmBlockSize-c.offset, len(src))
		subtle.XORBytes(dst[:k], src[:k], c.buf[c.offset:c.offset+k])
		if c.enc {
			c.hash.write(dst[:k])
		}
		c.offset = (c.offset + k) % gcmBlockSize
		src, dst = src[k:], dst[k:]
	}
	c.ctLen += uint64(n)
	return nil
}

// Final completes the authentication tag. It produces no output.
func (c *gcmCtx) Final(dst []byte) (int, error) {
	if c.finished {
		return 0, crypterr.ErrState
	}
	var s [gcmBlockSize]byte
	c.hash.lengths(s[:], c.aadLen, c.ctLen)
	subtle.XORBytes(c.tag[:], s[:], c.tagMask[:])
	c.finished = true
	return 0, nil
}

func (c *gcmCtx) setAAD(val any) error {
	aad, ok := val.([]byte)
	if !ok {
		return crypterr.ErrInvalidArg
	}
	if c.aadSet || c.ctLen > 0 || c.finished {
		return crypterr.ErrAADRepeatSet
	}
	c.hash.write(aad)
	c.hash.pad()
	c.aadLen = uint64(len(aad))
	c.aadSet = true
	return nil
}

func (c *gcmCtx) getTag(val any) error {
	out, ok := val.([]byte)
	if !ok {
		return crypterr.ErrInvalidArg
	}
	if !c.finished {
		return crypterr.ErrState
	}
	if len(out) != c.tagLen {
		return crypterr.ErrTagLen
	}
	copy(out, c.tag[:c.tagLen])
	return nil
}

func (c *gcmCtx) setTagLen(val any) error {
	n, ok := val.(uint32)
	if !ok {
		return crypterr.ErrInvalidArg
	}
	if c.finished {
		return crypterr.ErrState
	}
	switch {
	case n == 4, n == 8, n >= 12 && n <= gcmTagSize:
		c.tagLen = int(n)
		return nil
	default:
		return crypterr.ErrTagLen
	}
}

func (c *gcmCtx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlReinitStatus:
		iv, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		return c.start(iv)
	case CtrlSetAAD:
		return c.setAAD(val)
	case CtrlGetTag:
		return c.getTag(val)
	case CtrlSetTagLen:
		return c.setTagLen(val)
	case CtrlGetBlockSize:
		return putUint32Ctrl(val, 1)
	default:
		return crypterr.ErrCtrlType
	}
}

func (c *gcmCtx) DeInit() {
	c.clean()
	c.hash.clean()
	clear(c.tagMask[:])
	clear(c.tag[:])
	c.aadLen, c.ctLen = 0, 0
	c.aadSet, c.finished = false, false
	c.tagLen = gcmTagSize
}

func (c *gcmCtx) Free() {
	c.DeInit()
	c.free()
}
