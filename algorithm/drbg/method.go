package drbg

import (
	"crypto"
	"fmt"

	// Register the digests behind the hash and HMAC constructions.
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/symmetric"
)

// RandAlgID names a DRBG construction and its underlying primitive.
type RandAlgID int

const (
	RandSHA1 RandAlgID = iota + 1
	RandSHA224
	RandSHA256
	RandSHA384
	RandSHA512
	RandHMACSHA1
	RandHMACSHA224
	RandHMACSHA256
	RandHMACSHA384
	RandHMACSHA512
	RandAES128CTR
	RandAES192CTR
	RandAES256CTR
	RandAES128CTRDF
	RandAES192CTRDF
	RandAES256CTRDF
)

// RandType is the family of a construction.
type RandType int

const (
	TypeMD RandType = iota + 1
	TypeMAC
	TypeAES
	TypeAESDF
)

// IDMap binds a RandAlgID to the primitive it depends on. Exactly one of
// Hash and Cipher is set, depending on Type.
type IDMap struct {
	ID     RandAlgID
	Hash   crypto.Hash
	Cipher symmetric.CipherAlgID
	Type   RandType
}

var idMap = []IDMap{
	{ID: RandSHA1, Hash: crypto.SHA1, Type: TypeMD},
	{ID: RandSHA224, Hash: crypto.SHA224, Type: TypeMD},
	{ID: RandSHA256, Hash: crypto.SHA256, Type: TypeMD},
	{ID: RandSHA384, Hash: crypto.SHA384, Type: TypeMD},
	{ID: RandSHA512, Hash: crypto.SHA512, Type: TypeMD},
	{ID: RandHMACSHA1, Hash: crypto.SHA1, Type: TypeMAC},
	{ID: RandHMACSHA224, Hash: crypto.SHA224, Type: TypeMAC},
	{ID: RandHMACSHA256, Hash: crypto.SHA256, Type: TypeMAC},
	{ID: RandHMACSHA384, Hash: crypto.SHA384, Type: TypeMAC},
	{ID: RandHMACSHA512, Hash: crypto.SHA512, Type: TypeMAC},
	{ID: RandAES128CTR, Cipher: symmetric.AES128CTR, Type: TypeAES},
	{ID: RandAES192CTR, Cipher: symmetric.AES192CTR, Type: TypeAES},
	{ID: RandAES256CTR, Cipher: symmetric.AES256CTR, Type: TypeAES},
	{ID: RandAES128CTRDF, Cipher: symmetric.AES128CTR, Type: TypeAESDF},
	{ID: RandAES192CTRDF, Cipher: symmetric.AES192CTR, Type: TypeAESDF},
	{ID: RandAES256CTRDF, Cipher: symmetric.AES256CTR, Type: TypeAESDF},
}

var randNames = map[RandAlgID]string{
	RandSHA1:        "SHA1",
	RandSHA224:      "SHA224",
	RandSHA256:      "SHA256",
	RandSHA384:      "SHA384",
	RandSHA512:      "SHA512",
	RandHMACSHA1:    "HMAC-SHA1",
	RandHMACSHA224:  "HMAC-SHA224",
	RandHMACSHA256:  "HMAC-SHA256",
	RandHMACSHA384:  "HMAC-SHA384",
	RandHMACSHA512:  "HMAC-SHA512",
	RandAES128CTR:   "AES128-CTR",
	RandAES192CTR:   "AES192-CTR",
	RandAES256CTR:   "AES256-CTR",
	RandAES128CTRDF: "AES128-CTR-DF",
	RandAES192CTRDF: "AES192-CTR-DF",
	RandAES256CTRDF: "AES256-CTR-DF",
}

func (id RandAlgID) String() string {
	if n, ok := randNames[id]; ok {
		return n
	}
	return fmt.Sprintf("RandAlgID(%d)", int(id))
}

// ParseRandAlgID is the inverse of String.
func ParseRandAlgID(name string) (RandAlgID, error) {
	for id, n := range randNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown drbg %q: %w", name, crypterr.ErrAlgID)
}

// FindMethod resolves id to its dependency and checks that the dependency
// is available.
func FindMethod(id RandAlgID) (IDMap, error) {
	for _, m := range idMap {
		if m.ID != id {
			continue
		}
		switch m.Type {
		case TypeMD, TypeMAC:
			if !m.Hash.Available() {
				return IDMap{}, crypterr.ErrAlgID
			}
		case TypeAES, TypeAESDF:
			if _, err := symmetric.GetSymMethod(m.Cipher); err != nil {
				return IDMap{}, err
			}
		default:
			return IDMap{}, crypterr.ErrAlgID
		}
		return m, nil
	}
	return IDMap{}, crypterr.ErrAlgID
}

func newMechanism(m IDMap) (mechanism, error) {
	switch m.Type {
	case TypeMD:
		return newHashDRBG(m.Hash), nil
	case TypeMAC:
		return newHMACDRBG(m.Hash), nil
	case TypeAES:
		return newCTRDRBG(m.Cipher, false)
	case TypeAESDF:
		return newCTRDRBG(m.Cipher, true)
	default:
		return nil, crypterr.ErrAlgID
	}
}
