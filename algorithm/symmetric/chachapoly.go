package symmetric

import (
	"encoding/binary"

	"golang.org/x/crypto/poly1305"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	chachaNonceSize = 12
	polyTagSize     = poly1305.TagSize
)

type chachaPrimitive interface {
	Primitive
	noncePrimitive
}

// chachaPolyCtx is the RFC 8439 AEAD, processed incrementally. The
// one-time Poly1305 key comes from keystream block 0; data starts at block 1.
type chachaPolyCtx struct {
	*modeCtx
	stream   chachaPrimitive
	mac      *poly1305.MAC
	aadLen   uint64
	ctLen    uint64
	aadSet   bool
	finished bool
	tag      [polyTagSize]byte
}

func newChaChaPolyCtx(mc *modeCtx) (*chachaPolyCtx, error) {
	s, ok := mc.prim.(chachaPrimitive)
	if !ok {
		return nil, crypterr.ErrAlgID
	}
	return &chachaPolyCtx{modeCtx: mc, stream: s}, nil
}

func (c *chachaPolyCtx) Init(key, iv []byte, enc bool) error {
	if len(iv) != chachaNonceSize {
		return crypterr.ErrIVLen
	}
	if err := c.setKey(key, true); err != nil {
		return err
	}
	c.enc = enc
	return c.start(iv)
}

func (c *chachaPolyCtx) start(nonce []byte) error {
	if err := c.stream.SetNonce(nonce); err != nil {
		return err
	}
	var block [64]byte
	if err := c.stream.Encrypt(block[:], block[:]); err != nil {
		return err
	}
	var polyKey [32]byte
	copy(polyKey[:], block[:32])
	c.mac = poly1305.New(&polyKey)
	clear(polyKey[:])
	clear(block[:])
	c.stream.SetCounter(1)
	c.aadLen, c.ctLen = 0, 0
	c.aadSet, c.finished = false, false
	clear(c.tag[:])
	return nil
}

func (c *chachaPolyCtx) padMAC(n uint64) {
	if rem := n % 16; rem != 0 {
		var zeros [16]byte
		c.mac.Write(zeros[:16-rem])
	}
}

func (c *chachaPolyCtx) Update(dst, src []byte) (int, error) {
	if c.mac == nil {
		return 0, crypterr.ErrNoKey
	}
	if c.finished {
		return 0, crypterr.ErrState
	}
	return streamProcess(dst, src, c.crypt)
}

func (c *chachaPolyCtx) crypt(dst, src []byte) error {
	if !c.enc {
		c.mac.Write(src)
	}
	if err := c.stream.Encrypt(dst, src); err != nil {
		return err
	}
	if c.enc {
		c.mac.Write(dst)
	}
	c.ctLen += uint64(len(src))
	return nil
}

func (c *chachaPolyCtx) Final(dst []byte) (int, error) {
	if c.mac == nil {
		return 0, crypterr.ErrNoKey
	}
	if c.finished {
		return 0, crypterr.ErrState
	}
	c.padMAC(c.ctLen)
	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[:8], c.aadLen)
	binary.LittleEndian.PutUint64(lens[8:], c.ctLen)
	c.mac.Write(lens[:])
	c.mac.Sum(c.tag[:0])
	c.finished = true
	return 0, nil
}

func (c *chachaPolyCtx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlReinitStatus:
		iv, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		if len(iv) != chachaNonceSize {
			return crypterr.ErrIVLen
		}
		return c.start(iv)
	case CtrlSetAAD:
		aad, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		if c.mac == nil {
			return crypterr.ErrNoKey
		}
		if c.aadSet || c.ctLen > 0 || c.finished {
			return crypterr.ErrAADRepeatSet
		}
		c.mac.Write(aad)
		c.aadLen = uint64(len(aad))
		c.padMAC(c.aadLen)
		c.aadSet = true
		return nil
	case CtrlGetTag:
		out, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		if !c.finished {
			return crypterr.ErrState
		}
		if len(out) != polyTagSize {
			return crypterr.ErrTagLen
		}
		copy(out, c.tag[:])
		return nil
	case CtrlGetBlockSize:
		return putUint32Ctrl(val, 1)
	default:
		return crypterr.ErrCtrlType
	}
}

func (c *chachaPolyCtx) DeInit() {
	c.clean()
	c.mac = nil
	clear(c.tag[:])
	c.aadLen, c.ctLen = 0, 0
	c.aadSet, c.finished = false, false
}

func (c *chachaPolyCtx) Free() {
	c.DeInit()
	c.stream = nil
	c.free()
}
