// Package chacha20 exposes the ChaCha20 stream cipher with the primitive
// contract of the mode engine. Its block size is 1: Encrypt and Decrypt
// both xor the keystream into arbitrary-length input.
package chacha20

import (
	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"golang.org/x/crypto/chacha20"
)

const (
	KeySize   = chacha20.KeySize
	NonceSize = chacha20.NonceSize
)

type Key struct {
	key     [KeySize]byte
	nonce   [NonceSize]byte
	keySet  bool
	counter uint32
	stream  *chacha20.Cipher
}

func New() *Key { return &Key{} }

func (k *Key) SetEncryptKey(key []byte) error {
	if len(key) != KeySize {
		return crypterr.ErrKeyLen
	}
	copy(k.key[:], key)
	k.keySet = true
	k.stream = nil
	return nil
}

func (k *Key) SetDecryptKey(key []byte) error { return k.SetEncryptKey(key) }

// SetNonce installs a 12-byte nonce and rewinds the block counter to zero.
func (k *Key) SetNonce(nonce []byte) error {
	if len(nonce) != NonceSize {
		return crypterr.ErrIVLen
	}
	copy(k.nonce[:], nonce)
	k.counter = 0
	k.stream = nil
	return nil
}

// SetCounter moves the keystream to the start of block ctr.
func (k *Key) SetCounter(ctr uint32) {
	k.counter = ctr
	k.stream = nil
}

func (k *Key) Encrypt(dst, src []byte) error {
	if !k.keySet {
		return crypterr.ErrNoKey
	}
	if len(dst) < len(src) {
		return crypterr.ErrBuffLenNotEnough
	}
	if k.stream == nil {
		s, err := chacha20.NewUnauthenticatedCipher(k.key[:], k.nonce[:])
		if err != nil {
			return err
		}
		s.SetCounter(k.counter)
		k.stream = s
	}
	k.stream.XORKeyStream(dst[:len(src)], src)
	return nil
}

func (k *Key) Decrypt(dst, src []byte) error { return k.Encrypt(dst, src) }

func (k *Key) Clean() {
	clear(k.key[:])
	clear(k.nonce[:])
	k.keySet = false
	k.counter = 0
	k.stream = nil
}
