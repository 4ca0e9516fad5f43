package eal

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/drbg"
)

// RandCtx is an instantiated DRBG that is safe for concurrent use.
type RandCtx struct {
	mu  sync.Mutex
	id  uuid.UUID
	gen *drbg.Ctx
}

// NewRandCtx creates and instantiates a generator. A nil src seeds it from
// the operating system.
func NewRandCtx(alg drbg.RandAlgID, src drbg.Source, pers []byte) (*RandCtx, error) {
	gen, err := drbg.New(alg, src)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s drbg: %w", alg, err)
	}
	if err := gen.Instantiate(pers); err != nil {
		return nil, fmt.Errorf("cannot instantiate %s drbg: %w", alg, err)
	}
	r := &RandCtx{id: uuid.New(), gen: gen}
	slog.Debug("rand context created", "ctx_id", r.id, "alg", alg.String())
	return r, nil
}

func (r *RandCtx) ID() uuid.UUID { return r.id }

// Bytes fills out, mixing in the optional additional input.
func (r *RandCtx) Bytes(out, add []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == nil {
		return crypterr.ErrDrbgNotInstantiate
	}
	return r.gen.Generate(out, add)
}

func (r *RandCtx) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == nil {
		return 0, crypterr.ErrDrbgNotInstantiate
	}
	return r.gen.Read(p)
}

func (r *RandCtx) Reseed(add []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == nil {
		return crypterr.ErrDrbgNotInstantiate
	}
	return r.gen.Reseed(add)
}

func (r *RandCtx) Ctrl(opt drbg.CtrlOpt, val any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == nil {
		return crypterr.ErrDrbgNotInstantiate
	}
	return r.gen.Ctrl(opt, val)
}

func (r *RandCtx) Free() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == nil {
		return
	}
	r.gen.Uninstantiate()
	r.gen = nil
	slog.Debug("rand context freed", "ctx_id", r.id)
}

var (
	globalMu   sync.Mutex
	globalRand *RandCtx
)

// RandInit installs the process-wide generator used by RandBytes.
func RandInit(alg drbg.RandAlgID, pers []byte) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalRand != nil {
		return crypterr.ErrState
	}
	r, err := NewRandCtx(alg, nil, pers)
	if err != nil {
		return err
	}
	globalRand = r
	return nil
}

func RandBytes(out []byte) error {
	globalMu.Lock()
	r := globalRand
	globalMu.Unlock()
	if r == nil {
		return crypterr.ErrDrbgNotInstantiate
	}
	return r.Bytes(out, nil)
}

func RandDeinit() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalRand != nil {
		globalRand.Free()
		globalRand = nil
	}
}
