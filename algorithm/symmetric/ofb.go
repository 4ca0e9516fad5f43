package symmetric

import "github.com/liwei62/openHiTLS/algorithm/crypterr"

// ofbCtx keeps the current keystream block in iv; offset counts the bytes
// of it already used.
type ofbCtx struct {
	*modeCtx
}

// initStream keys the forward cipher for a keystream mode.
func (c *modeCtx) initStream(key, iv []byte, enc bool) error {
	if len(iv) != c.blockSize() {
		return crypterr.ErrIVLen
	}
	if err := c.setKey(key, true); err != nil {
		return err
	}
	c.enc = enc
	return c.setIV(iv)
}

func (c *ofbCtx) Init(key, iv []byte, enc bool) error { return c.initStream(key, iv, enc) }

func (c *ofbCtx) Update(dst, src []byte) (int, error) {
	return streamProcess(dst, src, c.crypt)
}

func (c *ofbCtx) crypt(dst, src []byte) error {
	bs := c.blockSize()
	for len(src) > 0 {
		if c.offset == 0 {
			if err := c.prim.Encrypt(c.iv, c.iv); err != nil {
				return err
			}
		}
		n := min(bs-c.offset, len(src))
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ c.iv[c.offset+i]
		}
		c.offset = (c.offset + n) % bs
		src, dst = src[n:], dst[n:]
	}
	return nil
}

func (c *ofbCtx) Final(dst []byte) (int, error) { return 0, nil }

func (c *ofbCtx) Ctrl(opt CtrlOpt, val any) error {
	if opt == CtrlGetBlockSize {
		return putUint32Ctrl(val, 1)
	}
	return c.ctrl(opt, val)
}

func (c *ofbCtx) DeInit() { c.clean() }

func (c *ofbCtx) Free() { c.free() }
