package symmetric

import (
	"github.com/liwei62/openHiTLS/algorithm/aes"
	"github.com/liwei62/openHiTLS/algorithm/chacha20"
	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/rc5"
	"github.com/liwei62/openHiTLS/algorithm/rc6"
	"github.com/liwei62/openHiTLS/algorithm/sm4"
)

// Method describes a primitive. Values are created once at package init and
// never modified.
type Method struct {
	id        SymAlgID
	name      string
	blockSize int
	keyLen    int
	newCtx    func() Primitive
}

func (m *Method) ID() SymAlgID { return m.id }
func (m *Method) Name() string { return m.name }
func (m *Method) BlockSize() int { return m.blockSize }
func (m *Method) KeyLen() int { return m.keyLen }

// NewCtx allocates an unkeyed primitive context.
func (m *Method) NewCtx() (Primitive, error) {
	p := m.newCtx()
	if p == nil {
		return nil, crypterr.ErrMemAlloc
	}
	return p, nil
}

var (
	aes128Method = &Method{id: SymAES128, name: "AES-128", blockSize: aes.BlockSize, keyLen: 16,
		newCtx: func() Primitive { return aes.New128() }}
	aes192Method = &Method{id: SymAES192, name: "AES-192", blockSize: aes.BlockSize, keyLen: 24,
		newCtx: func() Primitive { return aes.New192() }}
	aes256Method = &Method{id: SymAES256, name: "AES-256", blockSize: aes.BlockSize, keyLen: 32,
		newCtx: func() Primitive { return aes.New256() }}
	sm4Method = &Method{id: SymSM4, name: "SM4", blockSize: sm4.BlockSize, keyLen: sm4.KeySize,
		newCtx: func() Primitive { return sm4.New() }}
	chacha20Method = &Method{id: SymChaCha20, name: "CHACHA20", blockSize: 1, keyLen: chacha20.KeySize,
		newCtx: func() Primitive { return chacha20.New() }}
	rc5Method = &Method{id: SymRC5, name: "RC5", blockSize: rc5.BlockSize, keyLen: 16,
		newCtx: func() Primitive { return rc5.New(rc5.DefaultRounds) }}
	rc6Method = &Method{id: SymRC6, name: "RC6", blockSize: rc6.BlockSize, keyLen: 16,
		newCtx: func() Primitive { return rc6.New(16) }}
)

// GetSymMethod returns the primitive descriptor behind a cipher algorithm id.
func GetSymMethod(id CipherAlgID) (*Method, error) {
	info, ok := algTable[id]
	if !ok {
		return nil, crypterr.ErrAlgID
	}
	return info.method, nil
}

// ModeOf reports the mode of operation of id.
func ModeOf(id CipherAlgID) (CipherMode, error) {
	info, ok := algTable[id]
	if !ok {
		return 0, crypterr.ErrAlgID
	}
	return info.mode, nil
}

func isXTS(id CipherAlgID) bool {
	info, ok := algTable[id]
	return ok && info.mode == XTS
}
