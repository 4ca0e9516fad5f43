package symmetric

import (
	"crypto/subtle"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// BlockPadding pads the partial block data[:dataLen] in place up to
// blockSize and returns the padded length. data must have room for a full
// block. With PaddingNone a non-aligned tail is rejected unless id is an XTS
// algorithm, which handles the tail by ciphertext stealing.
func BlockPadding(id CipherAlgID, pad Padding, blockSize int, data []byte, dataLen int) (int, error) {
	if dataLen < 0 || dataLen >= blockSize || len(data) < blockSize {
		return dataLen, crypterr.ErrInvalidArg
	}
	padLen := blockSize - dataLen
	p := data[dataLen : dataLen+padLen]
	switch pad {
	case PaddingNone:
		if dataLen != 0 && !isXTS(id) {
			return dataLen, crypterr.ErrInputLen
		}
		return dataLen, nil
	case PaddingZeros:
		clear(p)
	case PaddingISO7816:
		p[0] = 0x80
		clear(p[1:])
	case PaddingX923:
		clear(p[:padLen-1])
		p[padLen-1] = byte(padLen)
	case PaddingPKCS5, PaddingPKCS7:
		for i := range p {
			p[i] = byte(padLen)
		}
	default:
		return dataLen, crypterr.ErrInvalidArg
	}
	return dataLen + padLen, nil
}

// BlockUnpadding validates the padding of the final decrypted block and
// returns the plaintext length. Zeros and None padding are left in place.
func BlockUnpadding(pad Padding, block []byte) (int, error) {
	if len(block) == 0 {
		return 0, nil
	}
	switch pad {
	case PaddingISO7816:
		return unpadISO7816(block)
	case PaddingX923:
		return unpadX923(block)
	case PaddingPKCS5, PaddingPKCS7:
		return unpadPKCS(block)
	default:
		return len(block), nil
	}
}

func unpadISO7816(block []byte) (int, error) {
	n := len(block) - 1
	for n > 0 && block[n] == 0 {
		n--
	}
	if block[n] != 0x80 {
		return 0, crypterr.ErrDataFormat
	}
	return n, nil
}

// geMask is 0xFFFFFFFF when a >= b, else 0. Both must be non-negative.
func geMask(a, b int) uint32 {
	return uint32(-subtle.ConstantTimeLessOrEq(b, a))
}

func unpadX923(block []byte) (int, error) {
	padLen := len(block)
	n := int(block[padLen-1])
	var check uint32
	tooLong := subtle.ConstantTimeLessOrEq(padLen+1, n)
	check |= uint32(tooLong) | uint32(subtle.ConstantTimeByteEq(block[padLen-1], 0))
	pos := subtle.ConstantTimeSelect(tooLong, 0, padLen-n)
	for i := 0; i < padLen-1; i++ {
		check |= uint32(block[i]) & geMask(i, pos)
	}
	if check != 0 {
		return 0, crypterr.ErrDataFormat
	}
	return padLen - n, nil
}

func unpadPKCS(block []byte) (int, error) {
	padLen := len(block)
	n := block[padLen-1]
	var check uint32
	tooLong := subtle.ConstantTimeLessOrEq(padLen+1, int(n))
	check |= uint32(tooLong) | uint32(subtle.ConstantTimeByteEq(n, 0))
	pos := subtle.ConstantTimeSelect(tooLong, 0, padLen-int(n))
	for i := 0; i < padLen; i++ {
		check |= uint32(block[i]^n) & geMask(i, pos)
	}
	if check != 0 {
		return 0, crypterr.ErrDataFormat
	}
	return padLen - int(n), nil
}
