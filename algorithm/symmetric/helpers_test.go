package symmetric

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// seq returns n bytes 0, 1, 2, ... offset by start.
func seq(n int, start byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func newCipher(t *testing.T, id CipherAlgID, key, iv []byte, enc bool, pad Padding) Cipher {
	t.Helper()
	c, err := NewCipher(id)
	require.NoError(t, err)
	require.NoError(t, c.Init(key, iv, enc))
	if mode, _ := ModeOf(id); mode == ECB || mode == CBC {
		require.NoError(t, c.Ctrl(CtrlSetPadding, pad))
	}
	t.Cleanup(c.Free)
	return c
}

// runChunks feeds data through c in pieces of size chunk (all at once when
// chunk <= 0) and appends the Final output.
func runChunks(t *testing.T, c Cipher, data []byte, chunk int) []byte {
	t.Helper()
	if chunk <= 0 {
		chunk = len(data) + 1
	}
	out := make([]byte, 0, len(data)+64)
	buf := make([]byte, chunk+64)
	for len(data) > 0 {
		k := min(chunk, len(data))
		n, err := c.Update(buf, data[:k])
		require.NoError(t, err)
		out = append(out, buf[:n]...)
		data = data[k:]
	}
	n, err := c.Final(buf)
	require.NoError(t, err)
	return append(out, buf[:n]...)
}
