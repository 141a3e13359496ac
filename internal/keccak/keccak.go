// Package keccak implements the original Keccak-256 hash used by EVM chains.
//
// This is the pre-standard Keccak (padding 0x01 ... 0x80), not FIPS-202 SHA3-256,
// so digests differ from sha3.Sum256 for every input.
package keccak

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the digest length in bytes.
	Size = 32

	// rate is the number of bytes absorbed per permutation (1600 - 2*256 bits).
	rate = 136

	lanes  = 25
	rounds = 24
)

var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets is indexed by lane position x + 5*y.
var rotationOffsets = [lanes]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// keccakF1600 applies the 24-round Keccak-f[1600] permutation in place.
func keccakF1600(a *[lanes]uint64) {
	var c, d [5]uint64
	var b [lanes]uint64

	for round := 0; round < rounds; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for i := 0; i < lanes; i++ {
			a[i] ^= d[i%5]
		}

		// rho and pi: B[y, 2x+3y] = rot(A[x, y])
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				i := x + 5*y
				b[y+5*((2*x+3*y)%5)] = bits.RotateLeft64(a[i], rotationOffsets[i])
			}
		}

		// chi
		for y := 0; y < 25; y += 5 {
			for x := 0; x < 5; x++ {
				a[y+x] = b[y+x] ^ (^b[y+(x+1)%5] & b[y+(x+2)%5])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}

// digest is a streaming Keccak-256 sponge.
type digest struct {
	state [lanes]uint64
	buf   [rate]byte
	n     int // bytes buffered in buf
}

// New256 returns a streaming Keccak-256 hash.Hash.
func New256() hash.Hash {
	return &digest{}
}

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var d digest
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return rate }

func (d *digest) Reset() {
	d.state = [lanes]uint64{}
	d.buf = [rate]byte{}
	d.n = 0
}

func (d *digest) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		k := copy(d.buf[d.n:], p)
		d.n += k
		p = p[k:]
		if d.n == rate {
			d.absorb()
		}
	}
	return written, nil
}

// Sum appends the digest to in without changing the sponge state.
func (d *digest) Sum(in []byte) []byte {
	dup := *d
	sum := dup.checkSum()
	return append(in, sum[:]...)
}

// absorb XORs the full rate block into the first 17 lanes and permutes.
func (d *digest) absorb() {
	for i := 0; i < rate/8; i++ {
		d.state[i] ^= binary.LittleEndian.Uint64(d.buf[i*8:])
	}
	keccakF1600(&d.state)
	d.n = 0
}

func (d *digest) checkSum() [Size]byte {
	// Zero the tail, then apply pad10*1. When only one byte of the block is
	// free both marker bits land in it (0x81).
	for i := d.n; i < rate; i++ {
		d.buf[i] = 0
	}
	d.buf[d.n] ^= 0x01
	d.buf[rate-1] ^= 0x80
	d.absorb()

	var out [Size]byte
	for i := 0; i < Size/8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], d.state[i])
	}
	return out
}
