// Copyright © 2020 BHouwens
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package primes generates probable primes by rejection sampling: random odd
// candidates of an exact bit length, trial division for small candidates and
// a Fermat test followed by Miller-Rabin rounds for large ones.
package primes

import (
	"errors"
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/utils"
)

const (
	// largeThreshold is the smallest bit length at which candidates are
	// tested probabilistically instead of by trial division.
	largeThreshold = 25
	// millerRabinRounds at 3 iterations gives an error probability around 2^-80
	// on candidates that already passed the Fermat test.
	millerRabinRounds = 3
)

var (
	// ErrSmallBitLength is returned if the requested bit length is less than 2.
	ErrSmallBitLength = errors.New("bit length must be at least 2")

	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big3 = big.NewInt(3)
)

// Generate returns an odd prime of exactly the given bit length, with the
// leading and trailing bits set.
func Generate(bitlength int) (*big.Int, error) {
	for {
		candidate, err := RandomOdd(bitlength)
		if err != nil {
			return nil, err
		}

		if bitlength < largeThreshold {
			if isSmallPrime(candidate) {
				return candidate, nil
			}
			continue
		}

		ok, err := isLargePrime(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// GenerateDiscreteLogSafe returns a prime p whose associated q = (p >> 1) - 1
// is an odd prime, so the Diffie-Hellman subgroup has no small-order
// components.
func GenerateDiscreteLogSafe(bitlength int) (*big.Int, error) {
	for {
		candidate, err := Generate(bitlength)
		if err != nil {
			return nil, err
		}

		ok, err := isDiscreteLogSafe(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// RandomOdd draws an odd value of exactly bitlength bits: bitlength-1 random
// bits with the top bit forced, shifted left by one with the low bit set.
func RandomOdd(bitlength int) (*big.Int, error) {
	if bitlength < 2 {
		return nil, ErrSmallBitLength
	}

	bits := bitlength - 1
	bs, err := utils.GenRandomBytes((bits + 7) / 8)
	if err != nil {
		return nil, err
	}

	candidate := new(big.Int).SetBytes(bs)
	// Keep bits-1 random bits and pin the most significant one.
	candidate.SetBit(candidate, bits-1, 1)
	for i := candidate.BitLen() - 1; i >= bits; i-- {
		candidate.SetBit(candidate, i, 0)
	}

	candidate.Lsh(candidate, 1)
	return candidate.SetBit(candidate, 0, 1), nil
}

func isDiscreteLogSafe(candidate *big.Int) (bool, error) {
	q := new(big.Int).Rsh(candidate, 1)
	q.Sub(q, big1)

	if q.Bit(0) == 0 {
		return false, nil
	}
	return isLargePrime(q)
}

func isLargePrime(candidate *big.Int) (bool, error) {
	ok, err := fermatLittle(candidate)
	if err != nil || !ok {
		return false, err
	}
	return millerRabin(candidate, millerRabinRounds)
}

// isSmallPrime trial-divides up to and including the square root. Candidates
// here are below 2^25 and fit a uint64 comfortably.
func isSmallPrime(candidate *big.Int) bool {
	cast := candidate.Uint64()
	if cast < 2 {
		return false
	}
	if cast == 2 {
		return true
	}
	for i := uint64(2); i*i <= cast; i++ {
		if cast%i == 0 {
			return false
		}
	}
	return true
}

// fermatLittle rejects candidates that are definitely composite, using a
// random base in [2, candidate-2].
func fermatLittle(candidate *big.Int) (bool, error) {
	basis, err := randomBasis(candidate)
	if err != nil {
		return false, err
	}
	result := new(big.Int).Exp(basis, new(big.Int).Sub(candidate, big1), candidate)
	return result.Cmp(big1) == 0, nil
}

func millerRabin(candidate *big.Int, iterations int) (bool, error) {
	s, d := greatest2Divisor(candidate)
	cMinus1 := new(big.Int).Sub(candidate, big1)

	for i := 0; i < iterations; i++ {
		basis, err := randomBasis(candidate)
		if err != nil {
			return false, err
		}

		y := new(big.Int).Exp(basis, d, candidate)
		if y.Cmp(big1) == 0 || y.Cmp(cMinus1) == 0 {
			continue
		}

		witness := true
		for j := 0; j < s-1; j++ {
			y.Exp(y, big2, candidate)
			if y.Cmp(cMinus1) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false, nil
		}
	}
	return true, nil
}

// randomBasis draws a fresh base in [2, candidate-2] on every call.
func randomBasis(candidate *big.Int) (*big.Int, error) {
	r, err := utils.RandomInt(new(big.Int).Sub(candidate, big3))
	if err != nil {
		return nil, err
	}
	return r.Add(r, big2), nil
}

// greatest2Divisor factors candidate-1 as d * 2^s with d odd.
func greatest2Divisor(candidate *big.Int) (int, *big.Int) {
	s := 0
	d := new(big.Int).Sub(candidate, big1)
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	return s, d
}
