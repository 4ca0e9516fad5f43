package main

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/drbg"
	"github.com/liwei62/openHiTLS/algorithm/eal"
	"github.com/liwei62/openHiTLS/algorithm/symmetric"
	"github.com/liwei62/openHiTLS/internal/config/cipherConfig"
)

const usage = `usage: hitls <command> [flags]

commands:
  enc   encrypt a file or stdin
  dec   decrypt a file or stdin
  rand  print random bytes from a DRBG as hex
  list  list cipher and DRBG algorithms`

var errTagMismatch = errors.New("authentication tag mismatch")

func run(cfg *cipherConfig.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "enc":
		return runCipher(cfg, true, args[1:], stdin, stdout, stderr)
	case "dec":
		return runCipher(cfg, false, args[1:], stdin, stdout, stderr)
	case "rand":
		return runRand(cfg, args[1:], stdout)
	case "list":
		return runList(stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type cipherFlags struct {
	alg, key, iv, pad, aad, tag string
	in, out                     string
	chunk                       int
}

func parseCipherFlags(cfg *cipherConfig.Config, name string, args []string) (*cipherFlags, error) {
	f := &cipherFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.alg, "alg", cfg.Cipher.Algorithm, "cipher algorithm, see list")
	fs.StringVar(&f.key, "key", "", "key as hex")
	fs.StringVar(&f.iv, "iv", "", "iv or nonce as hex")
	fs.StringVar(&f.pad, "pad", cfg.Cipher.Padding, "padding for ECB and CBC")
	fs.StringVar(&f.aad, "aad", "", "additional authenticated data as hex")
	fs.StringVar(&f.tag, "tag", "", "expected tag as hex (dec, AEAD only)")
	fs.StringVar(&f.in, "in", "", "input file (default stdin)")
	fs.StringVar(&f.out, "out", "", "output file (default stdout)")
	fs.IntVar(&f.chunk, "chunk", cfg.Cipher.ChunkSize, "read size in bytes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}

func isAEAD(mode symmetric.CipherMode) bool {
	return mode == symmetric.GCM || mode == symmetric.ChaChaPoly
}

func newCipherCtx(f *cipherFlags, enc bool) (*eal.CipherCtx, symmetric.CipherMode, error) {
	alg, err := symmetric.ParseCipherAlgID(f.alg)
	if err != nil {
		return nil, 0, err
	}
	mode, err := symmetric.ModeOf(alg)
	if err != nil {
		return nil, 0, err
	}
	key, err := decodeHex("key", f.key)
	if err != nil {
		return nil, 0, err
	}
	iv, err := decodeHex("iv", f.iv)
	if err != nil {
		return nil, 0, err
	}

	x, err := eal.NewCipherCtx(alg)
	if err != nil {
		return nil, 0, err
	}
	if err := x.Init(key, iv, enc); err != nil {
		x.Free()
		return nil, 0, fmt.Errorf("cannot init %s: %w", alg, err)
	}
	if mode == symmetric.ECB || mode == symmetric.CBC {
		pad, err := symmetric.ParsePadding(f.pad)
		if err != nil {
			x.Free()
			return nil, 0, err
		}
		if err := x.SetPadding(pad); err != nil {
			x.Free()
			return nil, 0, err
		}
	}
	if f.aad != "" {
		if !isAEAD(mode) {
			x.Free()
			return nil, 0, fmt.Errorf("-aad needs an AEAD mode: %w", crypterr.ErrCtrlType)
		}
		aad, err := decodeHex("aad", f.aad)
		if err != nil {
			x.Free()
			return nil, 0, err
		}
		if err := x.Ctrl(symmetric.CtrlSetAAD, aad); err != nil {
			x.Free()
			return nil, 0, err
		}
	}
	return x, mode, nil
}

func runCipher(cfg *cipherConfig.Config, enc bool, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	name := "dec"
	if enc {
		name = "enc"
	}
	f, err := parseCipherFlags(cfg, name, args)
	if err != nil {
		return err
	}
	x, mode, err := newCipherCtx(f, enc)
	if err != nil {
		return err
	}
	defer x.Free()

	var want []byte
	if !enc && isAEAD(mode) {
		if want, err = decodeHex("tag", f.tag); err != nil {
			return err
		}
		if len(want) == 0 {
			return fmt.Errorf("-tag is required to decrypt %s", f.alg)
		}
	}

	r := stdin
	if f.in != "" {
		in, err := os.Open(f.in)
		if err != nil {
			return fmt.Errorf("cannot open input file: %w", err)
		}
		defer in.Close()
		r = in
	}
	w := stdout
	var outFile *os.File
	if f.out != "" {
		if err := os.MkdirAll(filepath.Dir(f.out), 0755); err != nil {
			return err
		}
		outFile, err = os.Create(f.out)
		if err != nil {
			return fmt.Errorf("cannot open output file: %w", err)
		}
		defer outFile.Close()
		w = outFile
	}

	n, err := symmetric.ProcessStream(x, r, w, f.chunk)
	if err != nil {
		return err
	}
	slog.Debug("stream processed", "ctx_id", x.ID(), "bytes", n)

	if !isAEAD(mode) {
		return nil
	}
	tag := make([]byte, 16)
	if err := x.Ctrl(symmetric.CtrlGetTag, tag); err != nil {
		return err
	}
	if enc {
		fmt.Fprintf(stderr, "tag=%s\n", hex.EncodeToString(tag))
		return nil
	}
	if subtle.ConstantTimeCompare(tag, want) != 1 {
		if outFile != nil {
			outFile.Close()
			os.Remove(f.out)
		}
		return errTagMismatch
	}
	return nil
}

func runRand(cfg *cipherConfig.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rand", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	algName := fs.String("alg", cfg.Rand.Algorithm, "drbg algorithm, see list")
	n := fs.Int("n", 32, "number of bytes")
	pers := fs.String("pers", "", "personalization string")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("-n must not be negative: %w", crypterr.ErrInvalidArg)
	}
	alg, err := drbg.ParseRandAlgID(*algName)
	if err != nil {
		return err
	}
	r, err := eal.NewRandCtx(alg, nil, []byte(*pers))
	if err != nil {
		return err
	}
	defer r.Free()
	if err := r.Ctrl(drbg.CtrlSetReseedInterval, cfg.Rand.ReseedInterval); err != nil {
		return fmt.Errorf("invalid reseed interval: %w", err)
	}

	out := make([]byte, *n)
	if _, err := io.ReadFull(r, out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(out))
	return err
}

func runList(stdout io.Writer) error {
	fmt.Fprintln(stdout, "ciphers:")
	for _, id := range symmetric.Algorithms() {
		fmt.Fprintf(stdout, "  %-18s key=%d iv=%d\n", id, id.KeyLen(), id.IVLen())
	}
	fmt.Fprintln(stdout, "drbgs:")
	for id := drbg.RandSHA1; id <= drbg.RandAES256CTRDF; id++ {
		fmt.Fprintf(stdout, "  %s\n", id)
	}
	return nil
}
