package symmetric

import (
	"encoding/binary"
	"math"
)

const ctrBlockSize = 16

// ctrCtx is counter mode over a 16-byte register. The low 32 bits of iv are
// the block counter; on wrap the carry goes into the upper 96 bits. buf
// holds the keystream block of a partial tail and offset its used bytes.
type ctrCtx struct {
	*modeCtx
}

func (c *ctrCtx) Init(key, iv []byte, enc bool) error { return c.initStream(key, iv, enc) }

func (c *ctrCtx) Update(dst, src []byte) (int, error) {
	return streamProcess(dst, src, c.crypt)
}

func (c *ctrCtx) crypt(dst, src []byte) error {
	n := c.lastHandle(dst, src)
	src, dst = src[n:], dst[n:]

	for len(src) >= ctrBlockSize {
		blocks := uint32(min(uint64(len(src)/ctrBlockSize), math.MaxUint32))
		ctr32 := binary.BigEndian.Uint32(c.iv[12:])
		ctr32 += blocks
		if ctr32 < blocks {
			blocks -= ctr32
			ctr32 = 0
		}
		calLen := int(blocks) * ctrBlockSize
		if err := c.keystreamXOR(dst[:calLen], src[:calLen], int(blocks)); err != nil {
			return err
		}
		binary.BigEndian.PutUint32(c.iv[12:], ctr32)
		if ctr32 == 0 {
			incCounter(c.iv[:12])
		}
		src, dst = src[calLen:], dst[calLen:]
	}
	return c.remHandle(dst, src)
}

// keystreamXOR xors blocks keystream blocks starting at c.iv without
// touching c.iv. The run never crosses a wrap of the low counter word.
func (c *ctrCtx) keystreamXOR(dst, src []byte, blocks int) error {
	if fast, ok := c.prim.(ctrPrimitive); ok {
		return fast.CTREncrypt(dst, src, c.iv)
	}
	ctr := c.buf
	copy(ctr, c.iv)
	low := binary.BigEndian.Uint32(ctr[12:])
	var ks [ctrBlockSize]byte
	for i := 0; i < blocks; i++ {
		if err := c.prim.Encrypt(ks[:], ctr); err != nil {
			return err
		}
		off := i * ctrBlockSize
		for j := 0; j < ctrBlockSize; j++ {
			dst[off+j] = src[off+j] ^ ks[j]
		}
		low++
		binary.BigEndian.PutUint32(ctr[12:], low)
	}
	clear(ks[:])
	clear(ctr)
	return nil
}

// lastHandle consumes keystream left in buf by a previous partial block.
func (c *ctrCtx) lastHandle(dst, src []byte) int {
	n := 0
	for c.offset > 0 && n < len(src) {
		dst[n] = src[n] ^ c.buf[c.offset]
		c.offset = (c.offset + 1) % ctrBlockSize
		n++
	}
	return n
}

// remHandle generates one keystream block for a tail shorter than a block
// and advances the full 128-bit counter.
func (c *ctrCtx) remHandle(dst, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if err := c.prim.Encrypt(c.buf, c.iv); err != nil {
		return err
	}
	incCounter(c.iv)
	for i := range src {
		dst[i] = src[i] ^ c.buf[i]
	}
	c.offset = len(src)
	return nil
}

// incCounter adds one to the big-endian integer in b.
func incCounter(b []byte) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] != 0 {
			return
		}
	}
}

func (c *ctrCtx) Final(dst []byte) (int, error) { return 0, nil }

func (c *ctrCtx) Ctrl(opt CtrlOpt, val any) error {
	if opt == CtrlGetBlockSize {
		return putUint32Ctrl(val, 1)
	}
	return c.ctrl(opt, val)
}

func (c *ctrCtx) DeInit() { c.clean() }

func (c *ctrCtx) Free() { c.free() }
