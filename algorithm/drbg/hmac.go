package drbg

import (
	"bytes"
	"crypto"
	"crypto/hmac"
)

// hmacDRBG is HMAC_DRBG from SP 800-90A section 10.1.2.
type hmacDRBG struct {
	h    crypto.Hash
	k, v []byte
}

func newHMACDRBG(h crypto.Hash) *hmacDRBG { return &hmacDRBG{h: h} }

func (d *hmacDRBG) params() params {
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

func (d *hmacDRBG) mac(parts ...[]byte) []byte {
	m := hmac.New(d.h.New, d.k)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func (d *hmacDRBG) update(parts ...[]byte) {
	provided := false
	for _, p := range parts {
		provided = provided || len(p) > 0
	}
	d.k = d.mac(append([][]byte{d.v, {0x00}}, parts...)...)
	d.v = d.mac(d.v)
	if !provided {
		return
	}
	d.k = d.mac(append([][]byte{d.v, {0x01}}, parts...)...)
	d.v = d.mac(d.v)
}

func (d *hmacDRBG) instantiate(entropy, nonce, pers []byte) error {
	size := d.h.Size()
	d.k = make([]byte, size)
	d.v = bytes.Repeat([]byte{0x01}, size)
	d.update(entropy, nonce, pers)
	return nil
}

func (d *hmacDRBG) reseed(entropy, add []byte) error {
	d.update(entropy, add)
	return nil
}

func (d *hmacDRBG) generate(out, add []byte, _ uint64) error {
	if len(add) > 0 {
		d.update(add)
	}
	for n := 0; n < len(out); n += len(d.v) {
		d.v = d.mac(d.v)
		copy(out[n:], d.v)
	}
	d.update(add)
	return nil
}

func (d *hmacDRBG) uninstantiate() {
	clear(d.k)
	clear(d.v)
	d.k, d.v = nil, nil
}
