package drbg

import (
	"github.com/liwei62/openHiTLS/algorithm/crypterr"
)

const (
	maxInputLen = 0x7ffffff0
	// maxRequest is the per-call output limit of 2^19 bits.
	maxRequest = 1 << 16

	DefaultReseedInterval uint64 = 1 << 20
	MaxReseedInterval     uint64 = 1 << 48
)

// params are the input limits of a construction in bytes. strength is in
// bits.
type params struct {
	strength   int
	minEntropy int
	maxEntropy int
	minNonce   int
	maxNonce   int
	maxPers    int
	maxAdd     int
}

// mechanism is one SP 800-90A construction. Inputs are already length
// checked by Ctx.
type mechanism interface {
	params() params
	instantiate(entropy, nonce, pers []byte) error
	reseed(entropy, add []byte) error
	generate(out, add []byte, counter uint64) error
	uninstantiate()
}

type state int

const (
	stateUninstantiated state = iota
	stateReady
	stateError
)

// CtrlOpt selects a Ctx control operation.
type CtrlOpt int

const (
	CtrlSetReseedInterval CtrlOpt = iota + 1
	CtrlGetReseedInterval
	CtrlSetPredictionResistance
	CtrlGetStrength
	CtrlGetReseedCounter
)

// Ctx is a deterministic random bit generator. It is not safe for concurrent
// use.
type Ctx struct {
	id             RandAlgID
	mech           mechanism
	src            Source
	st             state
	reseedCounter  uint64
	reseedInterval uint64
	predResistance bool
}

// New creates an uninstantiated generator. A nil source means SystemSource.
func New(id RandAlgID, src Source) (*Ctx, error) {
	m, err := FindMethod(id)
	if err != nil {
		return nil, err
	}
	mech, err := newMechanism(m)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = SystemSource()
	}
	return &Ctx{id: id, mech: mech, src: src, reseedInterval: DefaultReseedInterval}, nil
}

func (c *Ctx) AlgID() RandAlgID { return c.id }

func (c *Ctx) entropy(p params) ([]byte, error) {
	e, err := c.src.GetEntropy(p.strength, p.minEntropy, p.maxEntropy)
	if err != nil {
		return nil, err
	}
	if len(e) < p.minEntropy || len(e) > p.maxEntropy {
		clear(e)
		return nil, crypterr.ErrDrbgEntropy
	}
	return e, nil
}

// Instantiate seeds the generator from the source and the optional
// personalization string.
func (c *Ctx) Instantiate(pers []byte) error {
	if c.st == stateReady {
		return crypterr.ErrState
	}
	p := c.mech.params()
	if len(pers) > p.maxPers {
		return crypterr.ErrDrbgPersLen
	}
	e, err := c.entropy(p)
	if err != nil {
		c.st = stateError
		return err
	}
	defer clear(e)

	var nonce []byte
	if p.minNonce > 0 {
		nonce, err = c.src.GetNonce(p.strength, p.minNonce, p.maxNonce)
		if err != nil || len(nonce) < p.minNonce || len(nonce) > p.maxNonce {
			c.st = stateError
			return crypterr.ErrDrbgEntropy
		}
		defer clear(nonce)
	}
	if err := c.mech.instantiate(e, nonce, pers); err != nil {
		c.st = stateError
		return err
	}
	c.reseedCounter = 1
	c.st = stateReady
	return nil
}

// Reseed mixes fresh entropy and the optional additional input into the
// state.
func (c *Ctx) Reseed(add []byte) error {
	if c.st != stateReady {
		return crypterr.ErrDrbgNotInstantiate
	}
	p := c.mech.params()
	if len(add) > p.maxAdd {
		return crypterr.ErrDrbgPersLen
	}
	e, err := c.entropy(p)
	if err != nil {
		c.st = stateError
		return err
	}
	defer clear(e)
	if err := c.mech.reseed(e, add); err != nil {
		c.st = stateError
		return err
	}
	c.reseedCounter = 1
	return nil
}

// Generate fills out. It reseeds first when the reseed interval is exhausted
// or prediction resistance is on; the additional input is then consumed by
// the reseed.
func (c *Ctx) Generate(out, add []byte) error {
	if c.st != stateReady {
		return crypterr.ErrDrbgNotInstantiate
	}
	if len(out) > maxRequest {
		return crypterr.ErrDrbgRequestLen
	}
	if len(add) > c.mech.params().maxAdd {
		return crypterr.ErrDrbgPersLen
	}
	if c.predResistance || c.reseedCounter > c.reseedInterval {
		if err := c.Reseed(add); err != nil {
			return err
		}
		add = nil
	}
	if err := c.mech.generate(out, add, c.reseedCounter); err != nil {
		c.st = stateError
		return err
	}
	c.reseedCounter++
	return nil
}

// Read implements io.Reader, splitting large requests.
func (c *Ctx) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		k := min(len(p)-n, maxRequest)
		if err := c.Generate(p[n:n+k], nil); err != nil {
			return n, err
		}
		n += k
	}
	return n, nil
}

// Uninstantiate zeroes the internal state.
func (c *Ctx) Uninstantiate() {
	c.mech.uninstantiate()
	c.reseedCounter = 0
	c.st = stateUninstantiated
}

func (c *Ctx) Ctrl(opt CtrlOpt, val any) error {
	switch opt {
	case CtrlSetReseedInterval:
		v, ok := val.(uint64)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		if v == 0 || v > MaxReseedInterval {
			return crypterr.ErrInvalidArg
		}
		c.reseedInterval = v
		return nil
	case CtrlGetReseedInterval:
		return putUint64(val, c.reseedInterval)
	case CtrlGetReseedCounter:
		return putUint64(val, c.reseedCounter)
	case CtrlSetPredictionResistance:
		v, ok := val.(bool)
		if !ok {
			return crypterr.ErrInvalidArg
		}
		c.predResistance = v
		return nil
	case CtrlGetStrength:
		return putUint64(val, uint64(c.mech.params().strength))
	default:
		return crypterr.ErrCtrlType
	}
}

func putUint64(val any, v uint64) error {
	p, ok := val.(*uint64)
	if !ok {
		return crypterr.ErrInvalidArg
	}
	if p == nil {
		return crypterr.ErrNullInput
	}
	*p = v
	return nil
}
