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

// Package comb multiplies short-Weierstrass points by the modified fixed-comb
// method of Hedabou, Pinel and Beneteau (IACR ePrint 2004/342): the scalar is
// recoded into nonzero odd digits so every loop iteration performs exactly
// one doubling and one addition, and table lookups touch every entry.
package comb

import (
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/jacobian"
)

// windowSizeCap is the maximum number of comb teeth. The pre-table holds
// 1 << (w-1) points, so this bounds peak memory per group.
const windowSizeCap = 6

// fixedPointOpt widens the window by one when multiplying the base point,
// since that table is cached on the group and re-used later.
const fixedPointOpt = true

// Multiply computes R = m * P for curves in short Weierstrass form, with the
// comb schedule and projective masking as SPA countermeasures. m is reduced
// modulo the group order; m = 0 yields the identity. P must be affine.
func Multiply(group *curve.Group, m *big.Int, p *curve.Point) (*curve.Point, error) {
	mRed := new(big.Int).Mod(m, group.N)
	if mRed.Sign() == 0 {
		return curve.NewIdentity(), nil
	}

	pEqualsG := p.X.Cmp(group.G.X) == 0 && p.Y != nil && p.Y.Cmp(group.G.Y) == 0

	w := windowSize(group.Nbits, pEqualsG)
	preLen := 1 << uint(w-1)
	d := (group.Nbits + w - 1) / w

	// The cached table is only valid for the base point; any other point
	// gets a fresh table.
	var table []*curve.Point
	if pEqualsG && group.T != nil {
		table = group.T
	} else {
		var err error
		table, err = precompute(group, p, w, d)
		if err != nil {
			return nil, err
		}
		if pEqualsG {
			group.T = table
			group.TSize = preLen
		}
	}

	// Make sure the scalar is odd (M = m or N - m, since N is odd), using
	// the fact that m * P = -(N - m) * P.
	mIsEven := mRed.Bit(0) == 0
	scalar := mRed
	if mIsEven {
		scalar = new(big.Int).Sub(group.N, mRed)
	}

	digits := fixedDigits(d, w, scalar)
	r, err := coreMultiplication(group, table, digits)
	if err != nil {
		return nil, err
	}

	if mIsEven {
		r = jacobian.Invert(group, r)
	}
	return jacobian.Normalize(group, r)
}

// coreMultiplication runs the comb loop over the recoded digits: d doublings,
// one table addition each. Cost d A + d D + 1 R.
func coreMultiplication(group *curve.Group, table []*curve.Point, digits []byte) (*curve.Point, error) {
	// Start from the top digit, which the recoding guarantees is odd and
	// therefore a real table entry, and randomize its coordinates.
	i := len(digits) - 1
	r, err := jacobian.Randomize(group, selectPoint(group, table, digits[i]))
	if err != nil {
		return nil, err
	}

	for i--; i >= 0; i-- {
		r = jacobian.Double(group, r)
		r = jacobian.Add(group, r, selectPoint(group, table, digits[i]))
	}
	return r, nil
}

// fixedDigits recodes m into d+1 signed odd digits: the classical comb matrix
// first (bit i+d*j of m becomes bit j of digit i), then a carry sweep that
// makes every digit odd by borrowing from its predecessor. The low seven bits
// of a digit carry the magnitude, bit 7 the sign.
func fixedDigits(d int, w int, m *big.Int) []byte {
	x := make([]byte, d+1)

	for i := 0; i < d; i++ {
		for j := 0; j < w; j++ {
			x[i] |= byte(m.Bit(i+d*j)) << uint(j)
		}
	}

	var c byte
	for i := 1; i <= d; i++ {
		cc := x[i] & c
		x[i] ^= c
		c = cc

		adjust := 1 - (x[i] & 1)
		c |= x[i] & (x[i-1] * adjust)
		x[i] ^= x[i-1] * adjust
		x[i-1] |= adjust << 7
	}
	return x
}

// selectPoint picks R = sign(digit) * T[abs(digit)/2]. Every table entry is
// read on every call so no cache trace depends on the digit; the inversion
// for negative digits is applied unconditionally on a copy.
func selectPoint(group *curve.Group, table []*curve.Point, digit byte) *curve.Point {
	r := curve.NewPoint(big.NewInt(0), big.NewInt(0))

	ii := int(digit&0x7f) >> 1
	for j := range table {
		if j == ii {
			r.X.Set(table[j].X)
			r.Y.Set(table[j].Y)
		}
	}

	// Y' = Y + s(P - 2Y) mod P with s the sign bit: Y for s = 0, P - Y for
	// s = 1 (and 0 stays 0), the same result as jacobian.Invert.
	s := big.NewInt(int64(digit >> 7))
	neg := new(big.Int).Sub(group.P, new(big.Int).Lsh(r.Y, 1))
	r.Y = group.ModP(new(big.Int).Add(r.Y, neg.Mul(neg, s)))
	return r
}

// precompute builds the comb table for P: if i = i_{w-1} ... i_1 in binary,
// then T[i] = i_{w-1} 2^{(w-1)d} P + ... + i_1 2^d P + P.
//
// Cost: d(w-1) D + (2^{w-1} - 1) A + 2 N.
func precompute(group *curve.Group, p *curve.Point, w int, d int) ([]*curve.Point, error) {
	preLen := 1 << uint(w-1)
	table := make([]*curve.Point, preLen)

	// T[0] = P and T[2^{l-1}] = 2^{dl} P for l = 1 .. w-1
	// (not yet the final values).
	table[0] = p.Copy()
	filledIdx := []int{0}
	for i := 1; i < preLen; i <<= 1 {
		table[i] = table[i>>1].Copy()
		for j := 0; j < d; j++ {
			table[i] = jacobian.Double(group, table[i])
		}
		filledIdx = append(filledIdx, i)
	}

	filled := make([]*curve.Point, len(filledIdx))
	for k, idx := range filledIdx {
		filled[k] = table[idx]
	}
	if err := jacobian.NormalizeMany(group, filled); err != nil {
		return nil, err
	}
	for k, idx := range filledIdx {
		table[idx] = filled[k]
	}

	// Fill the remaining entries with one addition each. T[2^l] is only
	// overwritten after every sum depending on it has been formed.
	for i := 1; i < preLen; i <<= 1 {
		for j := i - 1; j >= 0; j-- {
			table[i+j] = jacobian.Add(group, table[j], table[i])
		}
	}
	if err := jacobian.NormalizeMany(group, table[:]); err != nil {
		return nil, err
	}

	return table, nil
}

// windowSize minimizes the multiplication count in R = m * P, that is
// 10 d w + 18 * 2^(w-1) + 11 d + 7 w with d = ceil(nbits / w).
func windowSize(nbits int, pEqualsG bool) int {
	w := 4
	if nbits >= 384 {
		w = 5
	}

	// If P == G, pre-compute a bit more: the table is cached and re-used.
	if fixedPointOpt && pEqualsG {
		w++
	}

	if w > windowSizeCap {
		w = windowSizeCap
	}
	// Only relevant for the very small groups in the test suite.
	if w >= nbits {
		w = 2
	}
	return w
}
