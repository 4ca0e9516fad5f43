package drbg

import (
	"encoding/binary"
	"fmt"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/symmetric"
)

const ctrBlockLen = 16

// ctrDRBG is CTR_DRBG from SP 800-90A section 10.2.1 over the mode engine.
// The state update and output run through CTR mode; the derivation function
// uses CBC for BCC and OFB for its final chained encryption.
type ctrDRBG struct {
	useDF   bool
	keyLen  int
	seedLen int
	key     []byte
	v       []byte

	ctr symmetric.Cipher
	cbc symmetric.Cipher
	ofb symmetric.Cipher
}

func companions(id symmetric.CipherAlgID) (cbc, ofb symmetric.CipherAlgID, err error) {
	switch id {
	case symmetric.AES128CTR:
		return symmetric.AES128CBC, symmetric.AES128OFB, nil
	case symmetric.AES192CTR:
		return symmetric.AES192CBC, symmetric.AES192OFB, nil
	case symmetric.AES256CTR:
		return symmetric.AES256CBC, symmetric.AES256OFB, nil
	default:
		return 0, 0, crypterr.ErrAlgID
	}
}

func newCTRDRBG(id symmetric.CipherAlgID, useDF bool) (*ctrDRBG, error) {
	cbcID, ofbID, err := companions(id)
	if err != nil {
		return nil, err
	}
	d := &ctrDRBG{useDF: useDF, keyLen: id.KeyLen()}
	d.seedLen = d.keyLen + ctrBlockLen
	if d.ctr, err = symmetric.NewCipher(id); err != nil {
		return nil, fmt.Errorf("failed to create ctr context: %w", err)
	}
	if !useDF {
		return d, nil
	}
	if d.cbc, err = symmetric.NewCipher(cbcID); err != nil {
		return nil, fmt.Errorf("failed to create bcc context: %w", err)
	}
	if err := d.cbc.Ctrl(symmetric.CtrlSetPadding, symmetric.PaddingNone); err != nil {
		return nil, err
	}
	if d.ofb, err = symmetric.NewCipher(ofbID); err != nil {
		return nil, fmt.Errorf("failed to create df output context: %w", err)
	}
	return d, nil
}

func (d *ctrDRBG) params() params {
	s := d.keyLen * 8
	if !d.useDF {
		return params{
			strength:   s,
			minEntropy: d.seedLen,
			maxEntropy: d.seedLen,
			maxPers:    d.seedLen,
			maxAdd:     d.seedLen,
		}
	}
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

// keystream writes E(K, V+1), E(K, V+2), ... into out and advances V past
// the blocks used.
func (d *ctrDRBG) keystream(out []byte) error {
	iv := append([]byte(nil), d.v...)
	addMod(iv, []byte{1})
	defer clear(iv)
	if err := d.ctr.Init(d.key, iv, true); err != nil {
		return err
	}
	defer d.ctr.DeInit()
	clear(out)
	if _, err := d.ctr.Update(out, out); err != nil {
		return err
	}
	var blocks [8]byte
	binary.BigEndian.PutUint64(blocks[:], uint64((len(out)+ctrBlockLen-1)/ctrBlockLen))
	addMod(d.v, blocks[:])
	return nil
}

// update is CTR_DRBG_Update; provided is seedLen bytes.
func (d *ctrDRBG) update(provided []byte) error {
	temp := make([]byte, d.seedLen)
	defer clear(temp)
	if err := d.keystream(temp); err != nil {
		return err
	}
	for i := range temp {
		temp[i] ^= provided[i]
	}
	copy(d.key, temp[:d.keyLen])
	copy(d.v, temp[d.keyLen:])
	return nil
}

// bcc returns the last CBC block of data under key with a zero IV.
func (d *ctrDRBG) bcc(key, data []byte) ([]byte, error) {
	if err := d.cbc.Init(key, make([]byte, ctrBlockLen), true); err != nil {
		return nil, err
	}
	defer d.cbc.DeInit()
	out := make([]byte, len(data))
	defer clear(out)
	if _, err := d.cbc.Update(out, data); err != nil {
		return nil, err
	}
	if _, err := d.cbc.Final(nil); err != nil {
		return nil, err
	}
	return append([]byte(nil), out[len(out)-ctrBlockLen:]...), nil
}

// df is Block_Cipher_df over the concatenation of parts.
func (d *ctrDRBG) df(n int, parts ...[]byte) ([]byte, error) {
	inLen := 0
	for _, p := range parts {
		inLen += len(p)
	}
	// IV || L || N || input || 0x80, zero padded to whole blocks.
	s := make([]byte, ctrBlockLen+8, ctrBlockLen+8+inLen+ctrBlockLen)
	binary.BigEndian.PutUint32(s[ctrBlockLen:], uint32(inLen))
	binary.BigEndian.PutUint32(s[ctrBlockLen+4:], uint32(n))
	for _, p := range parts {
		s = append(s, p...)
	}
	s = append(s, 0x80)
	for len(s)%ctrBlockLen != 0 {
		s = append(s, 0)
	}
	defer clear(s)

	k := make([]byte, d.keyLen)
	for i := range k {
		k[i] = byte(i)
	}
	temp := make([]byte, 0, d.seedLen+ctrBlockLen)
	defer clear(temp)
	for i := uint32(0); len(temp) < d.seedLen; i++ {
		binary.BigEndian.PutUint32(s[:4], i)
		b, err := d.bcc(k, s)
		if err != nil {
			return nil, err
		}
		temp = append(temp, b...)
	}

	if err := d.ofb.Init(temp[:d.keyLen], temp[d.keyLen:d.seedLen], true); err != nil {
		return nil, err
	}
	defer d.ofb.DeInit()
	out := make([]byte, n)
	if _, err := d.ofb.Update(out, out); err != nil {
		return nil, err
	}
	return out, nil
}

// seedMaterial turns entropy and the other inputs into seedLen bytes.
func (d *ctrDRBG) seedMaterial(entropy []byte, extra ...[]byte) ([]byte, error) {
	if d.useDF {
		return d.df(d.seedLen, append([][]byte{entropy}, extra...)...)
	}
	seed := make([]byte, d.seedLen)
	copy(seed, entropy)
	for _, x := range extra {
		for i := range x {
			seed[i] ^= x[i]
		}
	}
	return seed, nil
}

func (d *ctrDRBG) instantiate(entropy, nonce, pers []byte) error {
	var seed []byte
	var err error
	if d.useDF {
		seed, err = d.seedMaterial(entropy, nonce, pers)
	} else {
		seed, err = d.seedMaterial(entropy, pers)
	}
	if err != nil {
		return err
	}
	defer clear(seed)
	d.key = make([]byte, d.keyLen)
	d.v = make([]byte, ctrBlockLen)
	return d.update(seed)
}

func (d *ctrDRBG) reseed(entropy, add []byte) error {
	seed, err := d.seedMaterial(entropy, add)
	if err != nil {
		return err
	}
	defer clear(seed)
	return d.update(seed)
}

func (d *ctrDRBG) generate(out, add []byte, _ uint64) error {
	provided := make([]byte, d.seedLen)
	defer clear(provided)
	if len(add) > 0 {
		if d.useDF {
			p, err := d.df(d.seedLen, add)
			if err != nil {
				return err
			}
			copy(provided, p)
			clear(p)
		} else {
			copy(provided, add)
		}
		if err := d.update(provided); err != nil {
			return err
		}
	}
	if err := d.keystream(out); err != nil {
		return err
	}
	return d.update(provided)
}

func (d *ctrDRBG) uninstantiate() {
	clear(d.key)
	clear(d.v)
	d.key, d.v = nil, nil
}
