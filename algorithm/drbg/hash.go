package drbg

import (
	"crypto"
	"encoding/binary"
	"hash"
)

// hashDRBG is Hash_DRBG from SP 800-90A section 10.1.1.
type hashDRBG struct {
	h       crypto.Hash
	seedLen int
	v, c    []byte
}

func newHashDRBG(h crypto.Hash) *hashDRBG {
	seedLen := 55
	if h.Size() > 32 {
		seedLen = 111
	}
	return &hashDRBG{h: h, seedLen: seedLen}
}

func hashStrength(h crypto.Hash) int {
	switch h {
	case crypto.SHA1:
		return 128
	case crypto.SHA224:
		return 192
	default:
		return 256
	}
}

func (d *hashDRBG) params() params {
	s := hashStrength(d.h)
	return params{
		strength:   s,
		minEntropy: s / 8,
		maxEntropy: maxInputLen,
		minNonce:   s / 16,
		maxNonce:   maxInputLen,
		maxPers:    maxInputLen,
		maxAdd:     maxInputLen,
	}
}

// hashDF is Hash_df over the concatenation of parts.
func hashDF(h hash.Hash, n int, parts ...[]byte) []byte {
	out := make([]byte, 0, n+h.Size())
	var hdr [5]byte
	binary.BigEndian.PutUint32(hdr[1:], uint32(n*8))
	for counter := byte(1); len(out) < n; counter++ {
		hdr[0] = counter
		h.Reset()
		h.Write(hdr[:])
		for _, p := range parts {
			h.Write(p)
		}
		out = h.Sum(out)
	}
	return out[:n]
}

func (d *hashDRBG) instantiate(entropy, nonce, pers []byte) error {
	h := d.h.New()
	d.v = hashDF(h, d.seedLen, entropy, nonce, pers)
	d.c = hashDF(h, d.seedLen, []byte{0x00}, d.v)
	return nil
}

func (d *hashDRBG) reseed(entropy, add []byte) error {
	h := d.h.New()
	v := hashDF(h, d.seedLen, []byte{0x01}, d.v, entropy, add)
	clear(d.v)
	clear(d.c)
	d.v = v
	d.c = hashDF(h, d.seedLen, []byte{0x00}, d.v)
	return nil
}

func (d *hashDRBG) generate(out, add []byte, counter uint64) error {
	h := d.h.New()
	if len(add) > 0 {
		h.Write([]byte{0x02})
		h.Write(d.v)
		h.Write(add)
		addMod(d.v, h.Sum(nil))
	}

	data := append([]byte(nil), d.v...)
	var w []byte
	for n := 0; n < len(out); n += len(w) {
		h.Reset()
		h.Write(data)
		w = h.Sum(w[:0])
		copy(out[n:], w)
		addMod(data, []byte{1})
	}
	clear(data)

	h.Reset()
	h.Write([]byte{0x03})
	h.Write(d.v)
	hv := h.Sum(nil)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], counter)
	addMod(d.v, hv)
	addMod(d.v, d.c)
	addMod(d.v, ctr[:])
	return nil
}

func (d *hashDRBG) uninstantiate() {
	clear(d.v)
	clear(d.c)
	d.v, d.c = nil, nil
}

// addMod sets dst = dst + x mod 2^(8*len(dst)), both big-endian; x is
// right-aligned and no longer than dst.
func addMod(dst, x []byte) {
	var carry uint16
	j := len(x) - 1
	for i := len(dst) - 1; i >= 0; i-- {
		sum := uint16(dst[i]) + carry
		if j >= 0 {
			sum += uint16(x[j])
			j--
		}
		dst[i] = byte(sum)
		carry = sum >> 8
	}
}
