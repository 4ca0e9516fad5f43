// Package drbg implements the SP 800-90A deterministic random bit
// generators: Hash_DRBG, HMAC_DRBG and CTR_DRBG with or without a
// derivation function. CTR_DRBG runs on the symmetric mode engine.
//
// A RandAlgID selects the construction; FindMethod resolves it to the digest
// or cipher it depends on.
package drbg
