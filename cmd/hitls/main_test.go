package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/internal/config/cipherConfig"
)

func testConfig() *cipherConfig.Config {
	return &cipherConfig.Config{
		Cipher: cipherConfig.CipherConfig{Algorithm: "AES-128-CBC", Padding: "PKCS7", ChunkSize: 7},
		Rand:   cipherConfig.RandConfig{Algorithm: "HMAC-SHA256", ReseedInterval: 1 << 10},
	}
}

const (
	key16 = "000102030405060708090a0b0c0d0e0f"
	iv16  = "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
)

func TestEncDecStdio(t *testing.T) {
	cfg := testConfig()
	pt := []byte("stream me through the cli, please")

	var ct bytes.Buffer
	require.NoError(t, run(cfg, []string{"enc", "-key", key16, "-iv", iv16}, bytes.NewReader(pt), &ct, &bytes.Buffer{}))
	assert.Equal(t, 48, ct.Len())

	var back bytes.Buffer
	require.NoError(t, run(cfg, []string{"dec", "-key", key16, "-iv", iv16}, &ct, &back, &bytes.Buffer{}))
	assert.Equal(t, pt, back.Bytes())
}

func TestEncDecFilesGCM(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	enc := filepath.Join(dir, "out", "ct.bin")
	dec := filepath.Join(dir, "pt.txt")
	pt := bytes.Repeat([]byte("gcm file "), 50)
	require.NoError(t, os.WriteFile(in, pt, 0o644))

	cfg := testConfig()
	common := []string{"-alg", "AES-128-GCM", "-key", key16, "-iv", "000000000000000000000001", "-aad", "cafe"}

	var stderr bytes.Buffer
	require.NoError(t, run(cfg, append([]string{"enc", "-in", in, "-out", enc}, common...), nil, &bytes.Buffer{}, &stderr))
	line := strings.TrimSpace(stderr.String())
	require.True(t, strings.HasPrefix(line, "tag="), line)
	tag := strings.TrimPrefix(line, "tag=")
	_, err := hex.DecodeString(tag)
	require.NoError(t, err)

	require.NoError(t, run(cfg, append([]string{"dec", "-in", enc, "-out", dec, "-tag", tag}, common...), nil, &bytes.Buffer{}, &bytes.Buffer{}))
	got, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, pt, got)

	bad := "00" + tag[2:]
	if bad == tag {
		bad = "11" + tag[2:]
	}
	err = run(cfg, append([]string{"dec", "-in", enc, "-out", dec, "-tag", bad}, common...), nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errTagMismatch)
	_, statErr := os.Stat(dec)
	assert.True(t, os.IsNotExist(statErr), "output removed after a failed check")

	err = run(cfg, append([]string{"dec", "-in", enc}, common...), nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "-tag is required")
}

func TestCipherErrors(t *testing.T) {
	cfg := testConfig()
	out := &bytes.Buffer{}

	err := run(cfg, []string{"enc", "-alg", "DES-CBC", "-key", key16, "-iv", iv16}, nil, out, out)
	assert.ErrorIs(t, err, crypterr.ErrAlgID)

	err = run(cfg, []string{"enc", "-key", "zz", "-iv", iv16}, nil, out, out)
	assert.ErrorContains(t, err, "invalid key")

	err = run(cfg, []string{"enc", "-key", key16, "-iv", "00"}, nil, out, out)
	assert.ErrorIs(t, err, crypterr.ErrIVLen)

	err = run(cfg, []string{"enc", "-key", key16, "-iv", iv16, "-aad", "00"}, nil, out, out)
	assert.ErrorIs(t, err, crypterr.ErrCtrlType)

	err = run(cfg, []string{"enc", "-key", key16, "-iv", iv16, "-pad", "OAEP"}, nil, out, out)
	assert.ErrorIs(t, err, crypterr.ErrPaddingNotSupport)

	err = run(cfg, []string{"enc", "-key", key16, "-iv", iv16, "-in", filepath.Join(t.TempDir(), "nope")}, nil, out, out)
	assert.ErrorContains(t, err, "cannot open input file")
}

func TestRand(t *testing.T) {
	cfg := testConfig()
	var out bytes.Buffer
	require.NoError(t, run(cfg, []string{"rand", "-n", "24"}, nil, &out, &bytes.Buffer{}))
	b, err := hex.DecodeString(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Len(t, b, 24)

	out.Reset()
	require.NoError(t, run(cfg, []string{"rand", "-alg", "AES128-CTR", "-n", "0"}, nil, &out, &bytes.Buffer{}))
	assert.Equal(t, "\n", out.String())

	assert.Error(t, run(cfg, []string{"rand", "-alg", "MD5"}, nil, &out, &bytes.Buffer{}))
	assert.ErrorIs(t, run(cfg, []string{"rand", "-n", "-1"}, nil, &out, &bytes.Buffer{}), crypterr.ErrInvalidArg)

	cfg.Rand.ReseedInterval = 0
	assert.ErrorIs(t, run(cfg, []string{"rand"}, nil, &out, &bytes.Buffer{}), crypterr.ErrInvalidArg)
}

func TestListAndUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(testConfig(), []string{"list"}, nil, &out, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "AES-256-XTS")
	assert.Contains(t, out.String(), "CHACHA20-POLY1305")
	assert.Contains(t, out.String(), "AES256-CTR-DF")

	assert.ErrorContains(t, run(testConfig(), nil, nil, &out, &out), "usage")
	assert.ErrorContains(t, run(testConfig(), []string{"frobnicate"}, nil, &out, &out), "unknown command")
}
