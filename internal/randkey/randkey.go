// Package randkey derives deterministic randomness from a cipher key. The
// xor-permutation, channel-swap and pixel-permutation primitives all seed a
// Fisher-Yates shuffle from the same 64-bit hash of the key; rot-N and
// addbit derive a rotation amount from the same hash run through a decimal
// scan. Keeping the hash and shuffle in one place guarantees every
// primitive that claims to be "key-seeded" produces bit-identical output
// for a given (key, data) pair, which is what makes decrypt the inverse of
// encrypt.
package randkey

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// Seed64 hashes key with FNV-1a, the standard library's stable 64-bit
// string hash. Any build of this package hashes a given key to the same
// value, which is the only cross-build compatibility guarantee the format
// requires (§9 DESIGN NOTES).
func Seed64(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// New returns a *rand.Rand seeded deterministically from key.
func New(key string) *rand.Rand {
	return rand.New(rand.NewSource(int64(Seed64(key))))
}

// Permutation returns a Fisher-Yates shuffle of [0, n) seeded from key.
func Permutation(key string, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r := New(key)
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

// Invert returns the inverse of a permutation produced by Permutation.
func Invert(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// RotationAmount derives a rot-N style amount in [1, 7] from key: hash the
// key, format the hash as decimal, and take the first digit in ['1', '7'].
func RotationAmount(key string) (int, error) {
	digits := strconv.FormatUint(Seed64(key), 10)
	for _, c := range digits {
		if c >= '1' && c <= '7' {
			return int(c - '0'), nil
		}
	}
	return 0, imgerr.New(imgerr.InvalidKey, "key %q hashes to a digit string with no digit in 1-7", key)
}
