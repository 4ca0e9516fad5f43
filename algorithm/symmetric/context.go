package symmetric

import (
	"fmt"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// Cipher is a mode-of-operation context created by NewCipher.
//
// Update writes at most len(dst) bytes and returns how many were written.
// Final flushes cached input; for AEAD modes it also computes the tag, which
// is read back with Ctrl(CtrlGetTag, buf).
type Cipher interface {
	Init(key, iv []byte, enc bool) error
	Update(dst, src []byte) (int, error)
	Final(dst []byte) (int, error)
	Ctrl(opt CtrlOpt, val any) error
	// DeInit zeroes key material and state. The context can be re-initialised.
	DeInit()
	// Free releases the context. It must not be used afterwards.
	Free()
	AlgID() CipherAlgID
	sealed()
}

// NewCipher allocates an unkeyed context for id.
func NewCipher(id CipherAlgID) (Cipher, error) {
	info, ok := algTable[id]
	if !ok {
		return nil, crypterr.ErrAlgID
	}
	mc, err := newModeCtx(id, info.method)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s context: %w", info.name, err)
	}
	switch info.mode {
	case ECB:
		return newBlockCtx(mc, ecbEncrypt, ecbDecrypt), nil
	case CBC:
		return newBlockCtx(mc, cbcEncrypt, cbcDecrypt), nil
	case CFB:
		return newCFBCtx(mc), nil
	case OFB:
		return &ofbCtx{modeCtx: mc}, nil
	case CTR:
		if mc.blockSize() != ctrBlockSize {
			return nil, crypterr.ErrAlgID
		}
		return &ctrCtx{modeCtx: mc}, nil
	case GCM:
		return newGCMCtx(mc)
	case XTS:
		return newXTSCtx(mc)
	case ChaChaPoly:
		return newChaChaPolyCtx(mc)
	default:
		return nil, crypterr.ErrAlgID
	}
}

// modeCtx is the state every mode shares: the primitive, the working
// register iv, a one-block scratch buf and the count of keystream bytes of
// the current register already consumed.
type modeCtx struct {
	algID  CipherAlgID
	method *Method
	prim   Primitive
	iv     []byte
	buf    []byte
	offset int
	enc    bool
}

func newModeCtx(id CipherAlgID, m *Method) (*modeCtx, error) {
	prim, err := m.NewCtx()
	if err != nil {
		return nil, err
	}
	return &modeCtx{
		algID:  id,
		method: m,
		prim:   prim,
		iv:     make([]byte, m.blockSize),
		buf:    make([]byte, m.blockSize),
	}, nil
}

func (c *modeCtx) AlgID() CipherAlgID { return c.algID }

func (c *modeCtx) sealed() {}

func (c *modeCtx) blockSize() int { return c.method.blockSize }

func (c *modeCtx) setKey(key []byte, enc bool) error {
	if key == nil {
		return crypterr.ErrNullInput
	}
	c.enc = enc
	if enc {
		return c.prim.SetEncryptKey(key)
	}
	return c.prim.SetDecryptKey(key)
}

// setIV installs a new working register. Leftover keystream belongs to the
// old register, so the offset is reset.
func (c *modeCtx) setIV(iv []byte) error {
	if iv == nil {
		return crypterr.ErrNullInput
	}
	if len(iv) != c.blockSize() {
		return crypterr.ErrIVLen
	}
	copy(c.iv, iv)
	c.offset = 0
	return nil
}

func (c *modeCtx) getIV(dst []byte) error {
	if dst == nil {
		return crypterr.ErrNullInput
	}
	if len(dst) != c.blockSize() {
		return crypterr.ErrInputLen
	}
	copy(dst, c.iv)
	return nil
}

// ctrl handles the options common to all IV-driven modes.
func (c *modeCtx) ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlReinitStatus:
		iv, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		return c.setIV(iv)
	case CtrlGetIV:
		dst, ok := val.([]byte)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		return c.getIV(dst)
	default:
		return crypterr.ErrCtrlType
	}
}

// clean zeroes the register, scratch and key schedule.
func (c *modeCtx) clean() {
	clear(c.iv)
	clear(c.buf)
	c.offset = 0
	c.prim.Clean()
}

func (c *modeCtx) free() {
	c.clean()
	c.prim = nil
	c.method = nil
}

// putUint32Ctrl stores v into a *uint32 control argument.
func putUint32Ctrl(val any, v uint32) error {
	p, ok := val.(*uint32)
	if !ok {
		return crypterr.ErrInvalidArg
	}
	if p == nil {
		return crypterr.ErrNullInput
	}
	*p = v
	return nil
}

// streamProcess runs fn over src for modes without a block cache.
func streamProcess(dst, src []byte, fn func(dst, src []byte) error) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	if len(src) > len(dst) {
		return 0, crypterr.ErrBuffLenNotEnough
	}
	if inexactOverlap(dst[:len(src)], src) {
		return 0, crypterr.ErrInvalidArg
	}
	if err := fn(dst[:len(src)], src); err != nil {
		return 0, err
	}
	return len(src), nil
}
