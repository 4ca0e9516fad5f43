package symmetric

import "encoding/binary"

// gcmFieldElement is a GF(2^128) element in GCM's reflected bit order: the
// coefficient of x^0 is the top bit of low, that of x^127 the bottom bit
// of high.
type gcmFieldElement struct {
	low, high uint64
}

var gcmReductionTable = []uint16{
	0x0000, 0x1c20, 0x3840, 0x2460, 0x7080, 0x6ca0, 0x48c0, 0x54e0,
	0xe100, 0xfd20, 0xd940, 0xc560, 0x9180, 0x8da0, 0xa9c0, 0xb5e0,
}

// ghash accumulates GHASH_H over a byte stream, buffering partial blocks.
type ghash struct {
	productTable [16]gcmFieldElement
	y            gcmFieldElement
	buf          [gcmBlockSize]byte
	n            int
}

const gcmBlockSize = 16

// reverseBits reverses the low four bits of i.
func reverseBits(i int) int {
	i = ((i << 2) & 0xc) | ((i >> 2) & 0x3)
	i = ((i << 1) & 0xa) | ((i >> 1) & 0x5)
	return i
}

func gcmAdd(x, y *gcmFieldElement) gcmFieldElement {
	return gcmFieldElement{x.low ^ y.low, x.high ^ y.high}
}

// gcmDouble multiplies x by the field generator; in reflected order this is
// a right shift.
func gcmDouble(x *gcmFieldElement) (double gcmFieldElement) {
	msbSet := x.high&1 == 1
	double.high = x.high>>1 | x.low<<63
	double.low = x.low >> 1
	if msbSet {
		double.low ^= 0xe100000000000000
	}
	return
}

// setKey precomputes the 16 multiples of h indexed by bit-reversed nibble.
func (g *ghash) setKey(h []byte) {
	x := gcmFieldElement{
		binary.BigEndian.Uint64(h[:8]),
		binary.BigEndian.Uint64(h[8:]),
	}
	g.productTable = [16]gcmFieldElement{}
	g.productTable[reverseBits(1)] = x
	for i := 2; i < 16; i += 2 {
		g.productTable[reverseBits(i)] = gcmDouble(&g.productTable[reverseBits(i/2)])
		g.productTable[reverseBits(i+1)] = gcmAdd(&g.productTable[reverseBits(i)], &x)
	}
	g.reset()
}

func (g *ghash) reset() {
	g.y = gcmFieldElement{}
	clear(g.buf[:])
	g.n = 0
}

// mul sets y to y*H.
func (g *ghash) mul(y *gcmFieldElement) {
	var z gcmFieldElement
	for i := 0; i < 2; i++ {
		word := y.high
		if i == 1 {
			word = y.low
		}
		for j := 0; j < 64; j += 4 {
			msw := z.high & 0xf
			z.high >>= 4
			z.high |= z.low << 60
			z.low >>= 4
			z.low ^= uint64(gcmReductionTable[msw]) << 48

			t := &g.productTable[word&0xf]
			z.low ^= t.low
			z.high ^= t.high
			word >>= 4
		}
	}
	*y = z
}

func (g *ghash) updateBlocks(y *gcmFieldElement, blocks []byte) {
	for len(blocks) > 0 {
		y.low ^= binary.BigEndian.Uint64(blocks)
		y.high ^= binary.BigEndian.Uint64(blocks[8:])
		g.mul(y)
		blocks = blocks[gcmBlockSize:]
	}
}

// write absorbs data, carrying an incomplete block over to the next call.
func (g *ghash) write(data []byte) {
	if g.n > 0 {
		k := copy(g.buf[g.n:], data)
		g.n += k
		data = data[k:]
		if g.n < gcmBlockSize {
			return
		}
		g.updateBlocks(&g.y, g.buf[:])
		g.n = 0
	}
	full := len(data) &^ (gcmBlockSize - 1)
	g.updateBlocks(&g.y, data[:full])
	g.n = copy(g.buf[:], data[full:])
}

// pad zero-fills and absorbs a pending partial block.
func (g *ghash) pad() {
	if g.n == 0 {
		return
	}
	clear(g.buf[g.n:])
	g.updateBlocks(&g.y, g.buf[:])
	g.n = 0
}

// lengths absorbs the final block of bit lengths and writes the digest.
func (g *ghash) lengths(out []byte, aadLen, ctLen uint64) {
	g.pad()
	g.y.low ^= aadLen * 8
	g.y.high ^= ctLen * 8
	g.mul(&g.y)
	binary.BigEndian.PutUint64(out[:8], g.y.low)
	binary.BigEndian.PutUint64(out[8:], g.y.high)
}

// deriveCounter computes J0 from the nonce (SP 800-38D 7.1).
func (g *ghash) deriveCounter(counter, nonce []byte) {
	clear(counter)
	if len(nonce) == 12 {
		copy(counter, nonce)
		counter[gcmBlockSize-1] = 1
		return
	}
	var y gcmFieldElement
	full := len(nonce) &^ (gcmBlockSize - 1)
	g.updateBlocks(&y, nonce[:full])
	if full != len(nonce) {
		var partial [gcmBlockSize]byte
		copy(partial[:], nonce[full:])
		g.updateBlocks(&y, partial[:])
	}
	y.high ^= uint64(len(nonce)) * 8
	g.mul(&y)
	binary.BigEndian.PutUint64(counter[:8], y.low)
	binary.BigEndian.PutUint64(counter[8:], y.high)
}

func (g *ghash) clean() {
	g.productTable = [16]gcmFieldElement{}
	g.reset()
}

// gcmInc32 increments the low 32 bits of a counter block, without carry.
func gcmInc32(counter []byte) {
	for i := gcmBlockSize - 1; i >= gcmBlockSize-4; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}
