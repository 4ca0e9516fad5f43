package symmetric

import (
	"crypto/subtle"
)

func ecbEncrypt(c *modeCtx, dst, src []byte) error {
	return c.prim.Encrypt(dst, src)
}

func ecbDecrypt(c *modeCtx, dst, src []byte) error {
	return c.prim.Decrypt(dst, src)
}

// cbcEncrypt chains whole blocks through c.iv, leaving the last ciphertext
// block in c.iv.
func cbcEncrypt(c *modeCtx, dst, src []byte) error {
	bs := c.blockSize()
	for len(src) > 0 {
		subtle.XORBytes(c.buf, src[:bs], c.iv)
		if err := c.prim.Encrypt(dst[:bs], c.buf); err != nil {
			return err
		}
		copy(c.iv, dst[:bs])
		src, dst = src[bs:], dst[bs:]
	}
	clear(c.buf)
	return nil
}

// cbcDecrypt works one block at a time through c.buf so that dst may alias src.
func cbcDecrypt(c *modeCtx, dst, src []byte) error {
	bs := c.blockSize()
	for len(src) > 0 {
		copy(c.buf, src[:bs])
		if err := c.prim.Decrypt(dst[:bs], c.buf); err != nil {
			return err
		}
		subtle.XORBytes(dst[:bs], dst[:bs], c.iv)
		copy(c.iv, c.buf)
		src, dst = src[bs:], dst[bs:]
	}
	clear(c.buf)
	return nil
}
