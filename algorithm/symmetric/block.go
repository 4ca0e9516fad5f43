package symmetric

import (
	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

type blockFunc func(c *modeCtx, dst, src []byte) error

// blockCtx drives modes that only process whole blocks. Input that does not
// fill a block is held in data until more arrives or Final is called.
type blockCtx struct {
	*modeCtx
	encrypt blockFunc
	decrypt blockFunc
	data    []byte
	dataLen int
	pad     Padding
}

func newBlockCtx(mc *modeCtx, enc, dec blockFunc) *blockCtx {
	return &blockCtx{
		modeCtx: mc,
		encrypt: enc,
		decrypt: dec,
		data:    make([]byte, mc.blockSize()),
	}
}

func (c *blockCtx) Init(key, iv []byte, enc bool) error {
	if err := c.setKey(key, enc); err != nil {
		return err
	}
	if mode, _ := ModeOf(c.algID); mode == ECB {
		if len(iv) != 0 {
			return crypterr.ErrIVLen
		}
	} else if err := c.setIV(iv); err != nil {
		return err
	}
	clear(c.data)
	c.dataLen = 0
	return nil
}

func (c *blockCtx) crypt(dst, src []byte) error {
	if c.enc {
		return c.encrypt(c.modeCtx, dst, src)
	}
	return c.decrypt(c.modeCtx, dst, src)
}

// deferLast reports whether a completed final block must be kept back for
// Final to strip its padding.
func (c *blockCtx) deferLast() bool {
	return !c.enc && c.pad != PaddingNone
}

func (c *blockCtx) Update(dst, src []byte) (int, error) {
	bs := c.blockSize()
	if len(dst) < (c.dataLen+len(src))/bs*bs {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	if anyOverlap(dst, src) && (c.dataLen > 0 || inexactOverlap(dst, src)) {
		return 0, crypterr.ErrInvalidArg
	}

	out := 0
	if c.dataLen > 0 {
		fill := min(bs-c.dataLen, len(src))
		copy(c.data[c.dataLen:], src[:fill])
		c.dataLen += fill
		src = src[fill:]
		if c.dataLen < bs {
			return 0, nil
		}
		if len(src) == 0 && c.deferLast() {
			return 0, nil
		}
		if err := c.crypt(dst[:bs], c.data); err != nil {
			return 0, err
		}
		c.dataLen = 0
		out = bs
		if len(src) == 0 {
			return out, nil
		}
	}

	left := len(src) % bs
	n := len(src) - left
	if left == 0 && n > 0 && c.deferLast() {
		left = bs
		n -= bs
	}
	if n > 0 {
		if err := c.crypt(dst[out:out+n], src[:n]); err != nil {
			return out, err
		}
	}
	if left > 0 {
		copy(c.data, src[n:])
		c.dataLen = left
	}
	return out + n, nil
}

func (c *blockCtx) Final(dst []byte) (int, error) {
	bs := c.blockSize()
	if c.pad != PaddingNone && len(dst) < bs {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	if c.enc {
		n, err := BlockPadding(c.algID, c.pad, bs, c.data, c.dataLen)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, nil
		}
		if len(dst) < n {
			return 0, crypterr.ErrBuffLenNotEnough
		}
		if err := c.encrypt(c.modeCtx, dst[:n], c.data[:n]); err != nil {
			return 0, err
		}
		c.resetCache()
		return n, nil
	}

	n := c.dataLen
	if n == 0 {
		return 0, nil
	}
	if n%bs != 0 {
		return 0, crypterr.ErrInputLen
	}
	if len(dst) < n {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	if err := c.decrypt(c.modeCtx, dst[:n], c.data[:n]); err != nil {
		return 0, err
	}
	c.resetCache()
	fin, err := BlockUnpadding(c.pad, dst[:n])
	if err != nil {
		clear(dst[:n])
		return 0, err
	}
	return fin, nil
}

func (c *blockCtx) resetCache() {
	clear(c.data)
	c.dataLen = 0
}

func (c *blockCtx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlSetPadding:
		p, ok := val.(Padding)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		if err := checkPadding(p); err != nil {
			return err
		}
		c.pad = p
		return nil
	case CtrlGetPadding:
		p, ok := val.(*Padding)
		if !ok || p == nil {
			return crypterr.ErrInvalidArg
		}
		*p = c.pad
		return nil
	case CtrlGetBlockSize:
		return putUint32Ctrl(val, uint32(c.blockSize()))
	default:
		return c.ctrl(opt, val)
	}
}

func (c *blockCtx) DeInit() {
	c.resetCache()
	c.pad = PaddingNone
	c.clean()
}

func (c *blockCtx) Free() {
	c.DeInit()
	c.free()
}
