package rng

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// XXH32 primes, as standardized.
const (
	prime32x1 uint32 = 2654435761
	prime32x2 uint32 = 2246822519
	prime32x3 uint32 = 3266489917
	prime32x4 uint32 = 668265263
	prime32x5 uint32 = 374761393
)

// HashSeed derives the deterministic RNG seed the game uses from 1.4
// onward: an XXH32 hash (seed 0) over the little-endian concatenation of
// five 32-bit values, reinterpreted as a signed integer. Each argument is
// reduced modulo Int32.MaxValue first; values already in the signed
// positive range pass through unchanged.
func HashSeed(a, b, c, d, e int32) int32 {
	var buf [20]byte
	for i, v := range [5]int32{a, b, c, d, e} {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v%math.MaxInt32))
	}
	return int32(xxh32(buf[:], 0))
}

// xxh32 computes XXHash32 over data with the given seed. Written out by
// hand: the ecosystem xxhash packages implement only the 64-bit variant,
// and seeding requires the 32-bit one bit-for-bit.
func xxh32(data []byte, seed uint32) uint32 {
	n := uint32(len(data))
	var h uint32

	if len(data) >= 16 {
		v1 := seed + prime32x1 + prime32x2
		v2 := seed + prime32x2
		v3 := seed
		v4 := seed - prime32x1
		for len(data) >= 16 {
			v1 = round32(v1, binary.LittleEndian.Uint32(data[0:4]))
			v2 = round32(v2, binary.LittleEndian.Uint32(data[4:8]))
			v3 = round32(v3, binary.LittleEndian.Uint32(data[8:12]))
			v4 = round32(v4, binary.LittleEndian.Uint32(data[12:16]))
			data = data[16:]
		}
		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h = seed + prime32x5
	}

	h += n

	for len(data) >= 4 {
		h += binary.LittleEndian.Uint32(data[0:4]) * prime32x3
		h = bits.RotateLeft32(h, 17) * prime32x4
		data = data[4:]
	}
	for len(data) > 0 {
		h += uint32(data[0]) * prime32x5
		h = bits.RotateLeft32(h, 11) * prime32x1
		data = data[1:]
	}

	h ^= h >> 15
	h *= prime32x2
	h ^= h >> 13
	h *= prime32x3
	h ^= h >> 16
	return h
}

func round32(acc, input uint32) uint32 {
	acc += input * prime32x2
	acc = bits.RotateLeft32(acc, 13)
	acc *= prime32x1
	return acc
}
