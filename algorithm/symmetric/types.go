package symmetric

// SymAlgID identifies a block or stream primitive.
type SymAlgID int

const (
	SymAES128 SymAlgID = iota + 1
	SymAES192
	SymAES256
	SymSM4
	SymChaCha20
	SymRC5
	SymRC6
)

type CipherMode int

const (
	ECB CipherMode = iota + 1
	CBC
	CTR
	CFB
	OFB
	GCM
	XTS
	ChaChaPoly
)

// Padding selects the block padding applied on Final when encrypting and
// removed when decrypting.
type Padding int

const (
	PaddingNone Padding = iota
	PaddingZeros
	PaddingISO7816
	PaddingX923
	PaddingPKCS5
	PaddingPKCS7
	paddingMaxCount
)

// CtrlOpt is an operation code for Cipher.Ctrl.
type CtrlOpt int

const (
	// CtrlReinitStatus installs a new IV ([]byte) and resets the keystream offset.
	CtrlReinitStatus CtrlOpt = iota + 1
	// CtrlGetIV copies the working IV into a []byte of block size.
	CtrlGetIV
	// CtrlSetFeedbackSize sets the CFB segment width in bits (uint32).
	CtrlSetFeedbackSize
	// CtrlGetFeedbackSize reads the CFB segment width into a *uint32.
	CtrlGetFeedbackSize
	// CtrlGetBlockSize reads the mode's block granularity into a *uint32.
	CtrlGetBlockSize
	CtrlSetPadding
	CtrlGetPadding
	CtrlSetAAD
	CtrlGetTag
	CtrlSetTagLen
)

// Primitive is a keyed block (or stream) transform. Encrypt and Decrypt
// process whole blocks; stream primitives accept any length.
type Primitive interface {
	SetEncryptKey(key []byte) error
	SetDecryptKey(key []byte) error
	Encrypt(dst, src []byte) error
	Decrypt(dst, src []byte) error
	Clean()
}

// ctrPrimitive is implemented by primitives with a native counter-mode path.
type ctrPrimitive interface {
	CTREncrypt(dst, src, iv []byte) error
}

// noncePrimitive is implemented by stream primitives driven by a nonce and
// block counter.
type noncePrimitive interface {
	SetNonce(nonce []byte) error
	SetCounter(ctr uint32)
}
