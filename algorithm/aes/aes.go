// Package aes adapts crypto/aes to the block primitive contract used by the
// mode engine: separate key setters, multi-block Encrypt/Decrypt and Clean.
package aes

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const BlockSize = aes.BlockSize

// Key is an AES key schedule for one fixed key length.
type Key struct {
	keyLen int
	block  cipher.Block
}

func New128() *Key { return &Key{keyLen: 16} }
func New192() *Key { return &Key{keyLen: 24} }
func New256() *Key { return &Key{keyLen: 32} }

func (k *Key) setKey(key []byte) error {
	if len(key) != k.keyLen {
		return crypterr.ErrKeyLen
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	k.block = block
	return nil
}

// SetEncryptKey expands key. crypto/aes keeps both directions in one schedule.
func (k *Key) SetEncryptKey(key []byte) error { return k.setKey(key) }

func (k *Key) SetDecryptKey(key []byte) error { return k.setKey(key) }

// Encrypt processes len(src) bytes, which must be whole blocks.
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

// CTREncrypt xors src with the keystream E(iv), E(iv+1), ... into dst.
// The caller keeps the run inside one 2^32 window of the low counter word
// and advances iv itself.
func (k *Key) CTREncrypt(dst, src, iv []byte) error {
	if k.block == nil {
		return crypterr.ErrNoKey
	}
	if len(iv) != BlockSize {
		return crypterr.ErrIVLen
	}
	if len(dst) < len(src) {
		return crypterr.ErrBuffLenNotEnough
	}
	cipher.NewCTR(k.block, iv).XORKeyStream(dst[:len(src)], src)
	return nil
}

// Clean drops the key schedule. crypto/aes does not expose its round keys,
// so this releases the only reference held here.
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
