// Package rc5 implements RC5-32/r/b as a mode-engine primitive with an
// 8-byte block.
package rc5

import (
	"encoding/binary"
	"math/bits"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	BlockSize     = 8
	DefaultRounds = 12
	MaxKeySize    = 255

	p32 uint32 = 0xb7e15163
	q32 uint32 = 0x9e3779b9
)

type RC5 struct {
	rounds int
	s      []uint32
}

// New returns an RC5-32 primitive with the given number of rounds.
func New(rounds int) *RC5 {
	if rounds <= 0 || rounds > 255 {
		rounds = DefaultRounds
	}
	return &RC5{rounds: rounds}
}

func (r *RC5) SetEncryptKey(key []byte) error { return r.generateS(key) }
func (r *RC5) SetDecryptKey(key []byte) error { return r.generateS(key) }

func (r *RC5) generateS(key []byte) error {
	b := len(key)
	if b == 0 || b > MaxKeySize {
		return crypterr.ErrKeyLen
	}
	t := 2 * (r.rounds + 1)
	s := make([]uint32, t)
	s[0] = p32
	for i := 1; i < t; i++ {
		s[i] = s[i-1] + q32
	}

	c := (b + 3) / 4
	l := make([]uint32, c)
	for i := b - 1; i >= 0; i-- {
		l[i/4] = l[i/4]<<8 + uint32(key[i])
	}

	var a, bb uint32
	i, j := 0, 0
	for k := 3 * max(t, c); k > 0; k-- {
		a = bits.RotateLeft32(s[i]+a+bb, 3)
		s[i] = a
		bb = bits.RotateLeft32(l[j]+a+bb, int((a+bb)&31))
		l[j] = bb
		i = (i + 1) % t
		j = (j + 1) % c
	}
	clear(l)
	r.Clean()
	r.s = s
	return nil
}

func (r *RC5) Encrypt(dst, src []byte) error {
	if err := r.check(dst, src); err != nil {
		return err
	}
	for off := 0; off < len(src); off += BlockSize {
		a := binary.LittleEndian.Uint32(src[off:]) + r.s[0]
		b := binary.LittleEndian.Uint32(src[off+4:]) + r.s[1]
		for i := 1; i <= r.rounds; i++ {
			a = bits.RotateLeft32(a^b, int(b&31)) + r.s[2*i]
			b = bits.RotateLeft32(b^a, int(a&31)) + r.s[2*i+1]
		}
		binary.LittleEndian.PutUint32(dst[off:], a)
		binary.LittleEndian.PutUint32(dst[off+4:], b)
	}
	return nil
}

func (r *RC5) Decrypt(dst, src []byte) error {
	if err := r.check(dst, src); err != nil {
		return err
	}
	for off := 0; off < len(src); off += BlockSize {
		a := binary.LittleEndian.Uint32(src[off:])
		b := binary.LittleEndian.Uint32(src[off+4:])
		for i := r.rounds; i >= 1; i-- {
			b = bits.RotateLeft32(b-r.s[2*i+1], -int(a&31)) ^ a
			a = bits.RotateLeft32(a-r.s[2*i], -int(b&31)) ^ b
		}
		binary.LittleEndian.PutUint32(dst[off:], a-r.s[0])
		binary.LittleEndian.PutUint32(dst[off+4:], b-r.s[1])
	}
	return nil
}

// Clean zeroes the expanded key table.
func (r *RC5) Clean() {
	clear(r.s)
	r.s = nil
}

func (r *RC5) check(dst, src []byte) error {
	if r.s == nil {
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
