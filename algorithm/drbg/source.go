package drbg

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// Source supplies entropy input and nonces. Implementations return between
// minLen and maxLen bytes carrying at least strength bits of entropy.
type Source interface {
	GetEntropy(strength, minLen, maxLen int) ([]byte, error)
	GetNonce(strength, minLen, maxLen int) ([]byte, error)
}

// ReaderSource draws entropy and nonces from an io.Reader, minLen bytes at
// a time.
type ReaderSource struct {
	R io.Reader
}

// SystemSource reads from the operating system generator.
func SystemSource() *ReaderSource { return &ReaderSource{R: rand.Reader} }

func (s *ReaderSource) GetEntropy(strength, minLen, maxLen int) ([]byte, error) {
	n := max(minLen, (strength+7)/8)
	if n > maxLen {
		return nil, crypterr.ErrDrbgEntropy
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.R, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", crypterr.ErrDrbgEntropy, err)
	}
	return buf, nil
}

func (s *ReaderSource) GetNonce(strength, minLen, maxLen int) ([]byte, error) {
	return s.GetEntropy(strength/2, minLen, maxLen)
}
