package symmetric

import (
	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// cfbCtx is cipher feedback mode with a configurable segment width.
type cfbCtx struct {
	*modeCtx
	feedbackBits uint32
}

func newCFBCtx(mc *modeCtx) *cfbCtx {
	c := &cfbCtx{modeCtx: mc}
	c.feedbackBits = c.defaultFeedback()
	return c
}

func (c *cfbCtx) defaultFeedback() uint32 {
	return min(uint32(c.blockSize()*8), 128)
}

// Init keys the primitive for encryption in both directions; CFB only ever
// runs the forward cipher.
func (c *cfbCtx) Init(key, iv []byte, enc bool) error {
	if len(iv) != c.blockSize() {
		return crypterr.ErrIVLen
	}
	if err := c.setKey(key, true); err != nil {
		return err
	}
	c.enc = enc
	return c.setIV(iv)
}

func (c *cfbCtx) Update(dst, src []byte) (int, error) {
	return streamProcess(dst, src, c.crypt)
}

func (c *cfbCtx) Final(dst []byte) (int, error) { return 0, nil }

func (c *cfbCtx) crypt(dst, src []byte) error {
	switch c.feedbackBits {
	case 1:
		return c.bitCrypt(dst, src, len(src)*8)
	case 8, 64, 128:
		if c.enc {
			return c.bytesEncrypt(dst, src)
		}
		return c.bytesDecrypt(dst, src)
	default:
		return crypterr.ErrFeedbackSize
	}
}

func (c *cfbCtx) bytesEncrypt(dst, src []byte) error {
	bs := c.blockSize()
	fb := int(c.feedbackBits / 8)
	iv, tmp := c.iv, c.buf

	for len(src) > 0 && c.offset > 0 {
		iv[c.offset] ^= src[0]
		dst[0] = iv[c.offset]
		src, dst = src[1:], dst[1:]
		c.offset = (c.offset + 1) % bs
	}

	for len(src) > 0 {
		if err := c.prim.Encrypt(tmp, iv); err != nil {
			return err
		}
		i := bs - fb
		copy(iv, iv[fb:])
		if len(src) >= fb {
			for k := 0; i < bs; i, k = i+1, k+1 {
				dst[k] = src[k] ^ tmp[k]
				iv[i] = dst[k]
			}
			src, dst = src[fb:], dst[fb:]
			continue
		}
		k := 0
		for ; k < len(src); k++ {
			dst[k] = src[k] ^ tmp[k]
			iv[i] = dst[k]
			i++
		}
		copy(iv[i:], tmp[k:])
		c.offset = bs - fb + len(src)
		src = nil
	}
	return nil
}

func (c *cfbCtx) bytesDecrypt(dst, src []byte) error {
	bs := c.blockSize()
	fb := int(c.feedbackBits / 8)
	iv, tmp := c.iv, c.buf

	for len(src) > 0 && c.offset > 0 {
		in := src[0]
		dst[0] = iv[c.offset] ^ in
		iv[c.offset] = in
		src, dst = src[1:], dst[1:]
		c.offset = (c.offset + 1) % bs
	}

	for len(src) > 0 {
		if err := c.prim.Encrypt(tmp, iv); err != nil {
			return err
		}
		i := bs - fb
		copy(iv, iv[fb:])
		if len(src) >= fb {
			for k := 0; i < bs; i, k = i+1, k+1 {
				iv[i] = src[k]
				dst[k] = src[k] ^ tmp[k]
			}
			src, dst = src[fb:], dst[fb:]
			continue
		}
		k := 0
		for ; k < len(src); k++ {
			iv[i] = src[k]
			dst[k] = src[k] ^ tmp[k]
			i++
		}
		copy(iv[i:], tmp[k:])
		c.offset = bs - fb + len(src)
		src = nil
	}
	return nil
}

// bitCrypt processes nbits bits, most significant bit of each byte first.
func (c *cfbCtx) bitCrypt(dst, src []byte, nbits int) error {
	for i := 0; i < nbits; i++ {
		pos := uint(7 - i%8)
		in := (src[i/8] >> pos) & 1
		out, err := c.cfb1(in)
		if err != nil {
			return err
		}
		dst[i/8] = dst[i/8]&^(1<<pos) | out<<pos
	}
	return nil
}

// cfb1 runs one 1-bit segment: in and the result are single bits.
func (c *cfbCtx) cfb1(in byte) (byte, error) {
	iv, tmp := c.iv, c.buf
	if err := c.prim.Encrypt(tmp, iv); err != nil {
		return 0, err
	}
	last := len(iv) - 1
	for i := 0; i < last; i++ {
		iv[i] = iv[i]<<1 | iv[i+1]>>7
	}
	out := (tmp[0] >> 7) ^ in
	ct := out
	if !c.enc {
		ct = in
	}
	iv[last] = iv[last]<<1 | ct
	return out, nil
}

func (c *cfbCtx) setFeedbackSize(val any) error {
	bits, ok := val.(uint32)
	if !ok {
		return crypterr.ErrInputLen
	}
	if c.method.id == SymSM4 && bits != 128 {
		return crypterr.ErrFeedbackSizeNotSupport
	}
	if bits != 1 && bits != 8 && bits != 128 {
		return crypterr.ErrFeedbackSize
	}
	if bits > uint32(c.blockSize()*8) {
		return crypterr.ErrFeedbackSize
	}
	c.feedbackBits = bits
	return nil
}

func (c *cfbCtx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlSetFeedbackSize:
		return c.setFeedbackSize(val)
	case CtrlGetFeedbackSize:
		return putUint32Ctrl(val, c.feedbackBits)
	case CtrlGetBlockSize:
		return putUint32Ctrl(val, 1)
	default:
		return c.ctrl(opt, val)
	}
}

func (c *cfbCtx) DeInit() {
	c.clean()
	c.feedbackBits = c.defaultFeedback()
}

func (c *cfbCtx) Free() {
	c.DeInit()
	c.free()
}
