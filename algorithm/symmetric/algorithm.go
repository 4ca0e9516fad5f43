package symmetric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

// CipherAlgID identifies a primitive bound to a mode of operation.
type CipherAlgID int

const (
	AES128CBC CipherAlgID = iota + 1
	AES192CBC
	AES256CBC
	AES128ECB
	AES192ECB
	AES256ECB
	AES128CTR
	AES192CTR
	AES256CTR
	AES128GCM
	AES192GCM
	AES256GCM
	AES128CFB
	AES192CFB
	AES256CFB
	AES128OFB
	AES192OFB
	AES256OFB
	AES128XTS
	AES256XTS
	SM4XTS
	SM4CBC
	SM4ECB
	SM4CTR
	SM4GCM
	SM4CFB
	SM4OFB
	ChaCha20Poly1305
	RC5ECB
	RC5CBC
	RC5CFB
	RC5OFB
	RC6ECB
	RC6CBC
	RC6CTR
	RC6GCM
	RC6CFB
	RC6OFB
)

type algInfo struct {
	name   string
	method *Method
	mode   CipherMode
}

var algTable = map[CipherAlgID]algInfo{
	AES128CBC: {"AES-128-CBC", aes128Method, CBC},
	AES192CBC: {"AES-192-CBC", aes192Method, CBC},
	AES256CBC: {"AES-256-CBC", aes256Method, CBC},
	AES128ECB: {"AES-128-ECB", aes128Method, ECB},
	AES192ECB: {"AES-192-ECB", aes192Method, ECB},
	AES256ECB: {"AES-256-ECB", aes256Method, ECB},
	AES128CTR: {"AES-128-CTR", aes128Method, CTR},
	AES192CTR: {"AES-192-CTR", aes192Method, CTR},
	AES256CTR: {"AES-256-CTR", aes256Method, CTR},
	AES128GCM: {"AES-128-GCM", aes128Method, GCM},
	AES192GCM: {"AES-192-GCM", aes192Method, GCM},
	AES256GCM: {"AES-256-GCM", aes256Method, GCM},
	AES128CFB: {"AES-128-CFB", aes128Method, CFB},
	AES192CFB: {"AES-192-CFB", aes192Method, CFB},
	AES256CFB: {"AES-256-CFB", aes256Method, CFB},
	AES128OFB: {"AES-128-OFB", aes128Method, OFB},
	AES192OFB: {"AES-192-OFB", aes192Method, OFB},
	AES256OFB: {"AES-256-OFB", aes256Method, OFB},
	AES128XTS: {"AES-128-XTS", aes128Method, XTS},
	AES256XTS: {"AES-256-XTS", aes256Method, XTS},

	SM4XTS: {"SM4-XTS", sm4Method, XTS},
	SM4CBC: {"SM4-CBC", sm4Method, CBC},
	SM4ECB: {"SM4-ECB", sm4Method, ECB},
	SM4CTR: {"SM4-CTR", sm4Method, CTR},
	SM4GCM: {"SM4-GCM", sm4Method, GCM},
	SM4CFB: {"SM4-CFB", sm4Method, CFB},
	SM4OFB: {"SM4-OFB", sm4Method, OFB},

	ChaCha20Poly1305: {"CHACHA20-POLY1305", chacha20Method, ChaChaPoly},

	RC5ECB: {"RC5-ECB", rc5Method, ECB},
	RC5CBC: {"RC5-CBC", rc5Method, CBC},
	RC5CFB: {"RC5-CFB", rc5Method, CFB},
	RC5OFB: {"RC5-OFB", rc5Method, OFB},

	RC6ECB: {"RC6-ECB", rc6Method, ECB},
	RC6CBC: {"RC6-CBC", rc6Method, CBC},
	RC6CTR: {"RC6-CTR", rc6Method, CTR},
	RC6GCM: {"RC6-GCM", rc6Method, GCM},
	RC6CFB: {"RC6-CFB", rc6Method, CFB},
	RC6OFB: {"RC6-OFB", rc6Method, OFB},
}

var algByName = func() map[string]CipherAlgID {
	m := make(map[string]CipherAlgID, len(algTable))
	for id, info := range algTable {
		m[info.name] = id
	}
	return m
}()

func (id CipherAlgID) String() string {
	if info, ok := algTable[id]; ok {
		return info.name
	}
	return fmt.Sprintf("CipherAlgID(%d)", int(id))
}

// KeyLen returns the key length Init expects for id.
func (id CipherAlgID) KeyLen() int {
	info, ok := algTable[id]
	if !ok {
		return 0
	}
	if info.mode == XTS {
		return 2 * info.method.keyLen
	}
	return info.method.keyLen
}

// IVLen returns the IV length Init expects for id, 0 for ECB.
func (id CipherAlgID) IVLen() int {
	info, ok := algTable[id]
	if !ok {
		return 0
	}
	switch info.mode {
	case ECB:
		return 0
	case GCM, ChaChaPoly:
		return 12
	default:
		return info.method.blockSize
	}
}

// ParseCipherAlgID accepts names such as "AES-128-CBC" or "sm4-xts".
func ParseCipherAlgID(name string) (CipherAlgID, error) {
	id, ok := algByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown cipher algorithm %q: %w", name, crypterr.ErrAlgID)
	}
	return id, nil
}

// Algorithms lists every supported id in ascending order.
func Algorithms() []CipherAlgID {
	ids := make([]CipherAlgID, 0, len(algTable))
	for id := range algTable {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var paddingNames = [...]string{
	PaddingNone:    "NONE",
	PaddingZeros:   "ZEROS",
	PaddingISO7816: "ISO7816",
	PaddingX923:    "X923",
	PaddingPKCS5:   "PKCS5",
	PaddingPKCS7:   "PKCS7",
}

func (p Padding) String() string {
	if p >= 0 && p < paddingMaxCount {
		return paddingNames[p]
	}
	return fmt.Sprintf("Padding(%d)", int(p))
}

func ParsePadding(name string) (Padding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE", "":
		return PaddingNone, nil
	case "ZEROS":
		return PaddingZeros, nil
	case "ISO7816":
		return PaddingISO7816, nil
	case "X923", "ANSIX923":
		return PaddingX923, nil
	case "PKCS5":
		return PaddingPKCS5, nil
	case "PKCS7":
		return PaddingPKCS7, nil
	default:
		return 0, fmt.Errorf("unknown padding mode %q: %w", name, crypterr.ErrPaddingNotSupport)
	}
}

func checkPadding(p Padding) error {
	if p < PaddingNone || p >= paddingMaxCount {
		return crypterr.ErrPaddingNotSupport
	}
	return nil
}
