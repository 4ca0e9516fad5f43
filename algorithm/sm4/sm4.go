// Package sm4 wraps the gmsm SM4 block cipher as a mode-engine primitive.
package sm4

import (
	"crypto/cipher"

	"github.com/tjfoc/gmsm/sm4"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	BlockSize = 16
	KeySize   = 16
)

type Key struct {
	block cipher.Block
}

func New() *Key { return &Key{} }

func (k *Key) setKey(key []byte) error {
	if len(key) != KeySize {
		return crypterr.ErrKeyLen
	}
	block, err := sm4.NewCipher(key)
	if err != nil {
		return err
	}
	k.block = block
	return nil
}

func (k *Key) SetEncryptKey(key []byte) error { return k.setKey(key) }
func (k *Key) SetDecryptKey(key []byte) error { return k.setKey(key) }

func (k *Key) Encrypt(dst, src []byte) error {
	if err := k.check(dst, src); err != nil {
		return err
	}
	for i := 0; i < len(src); i += BlockSize {
		k.block.Encrypt(dst[i:i+BlockSize], src[i:i+BlockSize])
	}
	return nil
}

func (k *Key) Decrypt(dst, src []byte) error {
	if err := k.check(dst, src); err != nil {
		return err
	}
	for i := 0; i < len(src); i += BlockSize {
		k.block.Decrypt(dst[i:i+BlockSize], src[i:i+BlockSize])
	}
	return nil
}

func (k *Key) Clean() {
	k.block = nil
}

func (k *Key) check(dst, src []byte) error {
	if k.block == nil {
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
