// Package crypterr holds the error taxonomy shared by the cipher, mode and
// random-generation packages. Callers match with errors.Is.
package crypterr

import "errors"

// Argument and length errors.
var (
	ErrNullInput        = errors.New("null input")
	ErrInvalidArg       = errors.New("invalid argument")
	ErrBuffLenNotEnough = errors.New("output buffer not enough")
	ErrIVLen            = errors.New("invalid iv length")
	ErrKeyLen           = errors.New("invalid key length")
	ErrInputLen         = errors.New("invalid input length")
	ErrTagLen           = errors.New("invalid tag length")
)

// Configuration errors.
var (
	ErrAlgID                  = errors.New("algorithm not supported")
	ErrPaddingNotSupport      = errors.New("padding not supported")
	ErrFeedbackSize           = errors.New("invalid feedback size")
	ErrFeedbackSizeNotSupport = errors.New("feedback size not supported by algorithm")
	ErrCtrlType               = errors.New("unsupported control")
	ErrMethodsNotSupport      = errors.New("method not supported")
	ErrAADRepeatSet           = errors.New("aad already set or data already processed")
)

// State and data errors.
var (
	ErrState      = errors.New("operation not allowed in current state")
	ErrNoKey      = errors.New("key not set")
	ErrDataFormat = errors.New("data format error")
	ErrMemAlloc   = errors.New("memory allocation failed")
)

// DRBG errors.
var (
	ErrDrbgEntropy        = errors.New("drbg: entropy source failed")
	ErrDrbgNotInstantiate = errors.New("drbg: not instantiated")
	ErrDrbgRequestLen     = errors.New("drbg: request too long")
	ErrDrbgPersLen        = errors.New("drbg: personalization or additional input too long")
)
