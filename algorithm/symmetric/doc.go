// Package symmetric is the block-cipher mode engine.
//
// A Cipher binds a primitive (AES, SM4, ChaCha20, RC5, RC6) to a mode of
// operation and exposes a streaming Init/Update/Final interface. ECB and CBC
// buffer partial blocks and apply padding on Final; CFB, OFB, CTR, GCM and
// ChaCha20-Poly1305 are stream modes that process any length immediately;
// XTS holds back its last block for ciphertext stealing.
//
// Ctrl reads and writes per-context options such as the IV, the CFB
// feedback width, the padding and AEAD tags.
package symmetric
