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

package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var (
	// ErrLessOrEqualBig2 is returned if a prime factor given to EulerFunction is less than or equal to 1
	ErrLessOrEqualBig2 = errors.New("less 2")
	// ErrNotInvertible is returned if the modular inverse of a non-coprime pair is requested
	ErrNotInvertible = errors.New("not invertible")
	// ErrNotInRange is returned if the value is not in the given range.
	ErrNotInRange = errors.New("not in range")
	// ErrLargerFloor is returned if the floor is larger than ceil.
	ErrLargerFloor = errors.New("larger floor")
	// ErrEmptySlice is returned if the length of slice is zero.
	ErrEmptySlice = errors.New("empty slice")

	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// RandomInt generates a random number in [0, n).
func RandomInt(n *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, n)
}

// RandomPositiveInt generates a random number in [1, n).
func RandomPositiveInt(n *big.Int) (*big.Int, error) {
	x, err := RandomInt(new(big.Int).Sub(n, big1))
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(x, big1), nil
}

// IsRelativePrime returns if a and b are relative primes
func IsRelativePrime(a *big.Int, b *big.Int) bool {
	return Gcd(a, b).Cmp(big1) == 0
}

// Gcd calculates greatest common divisor (GCD) via Euclidean algorithm
func Gcd(a *big.Int, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// EulerFunction assumes that primeFactor consists of distinct prime integers
// and N is their square-free product. Formula: N = prod_i P_i, the output is prod_i (P_i - 1).
func EulerFunction(primeFactor []*big.Int) (*big.Int, error) {
	if len(primeFactor) == 0 {
		return nil, ErrEmptySlice
	}
	result := big.NewInt(1)
	for i := 0; i < len(primeFactor); i++ {
		temp := primeFactor[i]
		if temp.Cmp(big1) <= 0 {
			return nil, ErrLessOrEqualBig2
		}
		result = new(big.Int).Mul(result, new(big.Int).Sub(temp, big1))
	}
	return result, nil
}

// InRange checks if the checkValue is in [floor, ceil).
func InRange(checkValue *big.Int, floor *big.Int, ceil *big.Int) error {
	if ceil.Cmp(floor) < 1 {
		return ErrLargerFloor
	}
	if checkValue.Cmp(floor) < 0 {
		return ErrNotInRange
	}
	if checkValue.Cmp(ceil) > -1 {
		return ErrNotInRange
	}
	return nil
}

// GenRandomBytes generates a random byte array with indicating the length.
func GenRandomBytes(size int) ([]byte, error) {
	if size < 1 {
		return nil, ErrEmptySlice
	}
	randomByte := make([]byte, size)
	_, err := rand.Read(randomByte)
	if err != nil {
		return nil, err
	}
	return randomByte, nil
}

// ModularInverse gets the inverse of a modulo m via the extended Euclidean
// algorithm, with the result normalised into [0, m). Both inputs are expected
// to be non-negative.
func ModularInverse(a *big.Int, m *big.Int) (*big.Int, error) {
	return ModularInverseInt(a, m)
}

// ModularInverseInt is the signed variant of ModularInverse. It accepts a
// negative a, which Jacobian normalisation produces for intermediate
// coordinates, and still normalises the result into [0, m).
func ModularInverseInt(a *big.Int, m *big.Int) (*big.Int, error) {
	mn0 := new(big.Int).Set(m)
	mn1 := new(big.Int).Set(a)
	xy0 := big.NewInt(0)
	xy1 := big.NewInt(1)

	for mn1.Sign() != 0 {
		quotient := new(big.Int).Quo(mn0, mn1)
		xy0, xy1 = xy1, new(big.Int).Sub(xy0, new(big.Int).Mul(quotient, xy1))
		mn0, mn1 = mn1, new(big.Int).Rem(mn0, mn1)
	}

	if new(big.Int).Abs(mn0).Cmp(big1) != 0 {
		return nil, ErrNotInvertible
	}
	// mn0 = xy0 * a (mod m); a negative a can end the loop on -1.
	if mn0.Sign() < 0 {
		xy0.Neg(xy0)
	}
	return xy0.Mod(xy0, m), nil
}
