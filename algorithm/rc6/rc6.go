// Package rc6 implements RC6-32/20/b with 16, 24 or 32 byte keys.
package rc6

import (
	"encoding/binary"
	"math/bits"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	BlockSize = 16

	rounds        = 20
	t             = 2 * (rounds + 2)
	p32    uint32 = 0xb7e15163
	q32    uint32 = 0x9e3779b9
)

type RC6 struct {
	keyLen int
	s      []uint32
}

// New returns an RC6 primitive that accepts keys of keyLen bytes.
func New(keyLen int) *RC6 {
	return &RC6{keyLen: keyLen}
}

func (c *RC6) SetEncryptKey(key []byte) error { return c.generateS(key) }
func (c *RC6) SetDecryptKey(key []byte) error { return c.generateS(key) }

func (c *RC6) generateS(key []byte) error {
	b := len(key)
	if b != c.keyLen || (b != 16 && b != 24 && b != 32) {
		return crypterr.ErrKeyLen
	}
	s := make([]uint32, t)
	s[0] = p32
	for i := 1; i < t; i++ {
		s[i] = s[i-1] + q32
	}
	lw := (b + 3) / 4
	l := make([]uint32, lw)
	for i := b - 1; i >= 0; i-- {
		l[i/4] = l[i/4]<<8 + uint32(key[i])
	}

	var a, bb uint32
	i, j := 0, 0
	for k := 0; k < 3*max(lw, t); k++ {
		a = bits.RotateLeft32(s[i]+a+bb, 3)
		s[i] = a
		bb = bits.RotateLeft32(l[j]+a+bb, int((a+bb)&31))
		l[j] = bb
		i = (i + 1) % t
		j = (j + 1) % lw
	}
	clear(l)
	c.Clean()
	c.s = s
	return nil
}

func (c *RC6) Encrypt(dst, src []byte) error {
	if err := c.check(dst, src); err != nil {
		return err
	}
	s := c.s
	for off := 0; off < len(src); off += BlockSize {
		in := src[off : off+BlockSize]
		a := binary.LittleEndian.Uint32(in[0:])
		b := binary.LittleEndian.Uint32(in[4:]) + s[0]
		cc := binary.LittleEndian.Uint32(in[8:])
		d := binary.LittleEndian.Uint32(in[12:]) + s[1]
		for i := 1; i <= rounds; i++ {
			tv := bits.RotateLeft32(b*(2*b+1), 5)
			uv := bits.RotateLeft32(d*(2*d+1), 5)
			a = bits.RotateLeft32(a^tv, int(uv&31)) + s[2*i]
			cc = bits.RotateLeft32(cc^uv, int(tv&31)) + s[2*i+1]
			a, b, cc, d = b, cc, d, a
		}
		a += s[2*rounds+2]
		cc += s[2*rounds+3]
		out := dst[off : off+BlockSize]
		binary.LittleEndian.PutUint32(out[0:], a)
		binary.LittleEndian.PutUint32(out[4:], b)
		binary.LittleEndian.PutUint32(out[8:], cc)
		binary.LittleEndian.PutUint32(out[12:], d)
	}
	return nil
}

func (c *RC6) Decrypt(dst, src []byte) error {
	if err := c.check(dst, src); err != nil {
		return err
	}
	s := c.s
	for off := 0; off < len(src); off += BlockSize {
		in := src[off : off+BlockSize]
		a := binary.LittleEndian.Uint32(in[0:])
		b := binary.LittleEndian.Uint32(in[4:])
		cc := binary.LittleEndian.Uint32(in[8:]) - s[2*rounds+3]
		d := binary.LittleEndian.Uint32(in[12:])
		a -= s[2*rounds+2]
		for i := rounds; i >= 1; i-- {
			a, b, cc, d = d, a, b, cc
			uv := bits.RotateLeft32(d*(2*d+1), 5)
			tv := bits.RotateLeft32(b*(2*b+1), 5)
			cc = bits.RotateLeft32(cc-s[2*i+1], -int(tv&31)) ^ uv
			a = bits.RotateLeft32(a-s[2*i], -int(uv&31)) ^ tv
		}
		out := dst[off : off+BlockSize]
		binary.LittleEndian.PutUint32(out[0:], a)
		binary.LittleEndian.PutUint32(out[4:], b-s[0])
		binary.LittleEndian.PutUint32(out[8:], cc)
		binary.LittleEndian.PutUint32(out[12:], d-s[1])
	}
	return nil
}

func (c *RC6) Clean() {
	clear(c.s)
	c.s = nil
}

func (c *RC6) check(dst, src []byte) error {
	if c.s == nil {
		return crypterr.ErrNoKey
	}
	if len(src)%BlockSize != 0 {
		return crypterr.ErrInputLen
	}
	if len(dst) < len(src) {
		return crypterr.ErrBuffLenNotEnough
	}
	return nil
}
