package eal

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/liwei62/openHiTLS/algorithm/crypterr"
	"github.com/liwei62/openHiTLS/algorithm/symmetric"
)

type cipherState int

const (
	stateNew cipherState = iota
	stateInit
	stateUpdate
	stateFinal
)

func (s cipherState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateInit:
		return "init"
	case stateUpdate:
		return "update"
	case stateFinal:
		return "final"
	default:
		return fmt.Sprintf("cipherState(%d)", int(s))
	}
}

// CipherCtx wraps a mode context with a lifecycle check: Update and Final
// need a prior Init, and a finished context needs Init or a reinit control
// before it processes data again.
type CipherCtx struct {
	id    uuid.UUID
	alg   symmetric.CipherAlgID
	c     symmetric.Cipher
	state cipherState
	enc   bool
}

func NewCipherCtx(alg symmetric.CipherAlgID) (*CipherCtx, error) {
	c, err := symmetric.NewCipher(alg)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s context: %w", alg, err)
	}
	ctx := &CipherCtx{id: uuid.New(), alg: alg, c: c}
	slog.Debug("cipher context created", "ctx_id", ctx.id, "alg", alg.String())
	return ctx, nil
}

func (x *CipherCtx) ID() uuid.UUID { return x.id }
func (x *CipherCtx) AlgID() symmetric.CipherAlgID { return x.alg }

func (x *CipherCtx) Init(key, iv []byte, enc bool) error {
	if err := x.c.Init(key, iv, enc); err != nil {
		x.state = stateNew
		slog.Debug("cipher init failed", "ctx_id", x.id, "err", err)
		return err
	}
	x.enc = enc
	x.state = stateInit
	slog.Debug("cipher initialised", "ctx_id", x.id, "enc", enc)
	return nil
}

func (x *CipherCtx) Update(dst, src []byte) (int, error) {
	if x.state != stateInit && x.state != stateUpdate {
		return 0, crypterr.ErrState
	}
	n, err := x.c.Update(dst, src)
	if err != nil {
		slog.Debug("cipher update failed", "ctx_id", x.id, "err", err)
		return n, err
	}
	x.state = stateUpdate
	return n, nil
}

func (x *CipherCtx) Final(dst []byte) (int, error) {
	if x.state != stateInit && x.state != stateUpdate {
		return 0, crypterr.ErrState
	}
	n, err := x.c.Final(dst)
	if err != nil {
		slog.Debug("cipher final failed", "ctx_id", x.id, "err", err)
		return n, err
	}
	x.state = stateFinal
	slog.Debug("cipher finished", "ctx_id", x.id)
	return n, nil
}

// Ctrl forwards to the mode context. A successful reinit makes a finished
// context usable again; the tag stays readable after Final.
func (x *CipherCtx) Ctrl(opt symmetric.CtrlOpt, val any) error {
	if x.state == stateNew {
		return crypterr.ErrState
	}
	if err := x.c.Ctrl(opt, val); err != nil {
		return err
	}
	if opt == symmetric.CtrlReinitStatus {
		x.state = stateInit
	}
	return nil
}

func (x *CipherCtx) SetPadding(p symmetric.Padding) error {
	return x.Ctrl(symmetric.CtrlSetPadding, p)
}

func (x *CipherCtx) GetPadding() (symmetric.Padding, error) {
	var p symmetric.Padding
	if err := x.Ctrl(symmetric.CtrlGetPadding, &p); err != nil {
		return 0, err
	}
	return p, nil
}

func (x *CipherCtx) BlockSize() (int, error) {
	var bs uint32
	if err := x.Ctrl(symmetric.CtrlGetBlockSize, &bs); err != nil {
		return 0, err
	}
	return int(bs), nil
}

func (x *CipherCtx) DeInit() {
	x.c.DeInit()
	x.state = stateNew
	slog.Debug("cipher deinitialised", "ctx_id", x.id)
}

func (x *CipherCtx) Free() {
	if x.c == nil {
		return
	}
	x.c.Free()
	x.c = nil
	x.state = stateNew
	slog.Debug("cipher context freed", "ctx_id", x.id)
}
