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

// Package montgomery implements x/z-only scalar multiplication for curves in
// Montgomery form. The ladder performs the same work for every scalar bit and
// the bit only selects slot indices, so no branch depends on the scalar.
package montgomery

import (
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/primes"
)

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big4 = big.NewInt(4)
)

// Multiply computes R = m * P with the Montgomery ladder. P must be affine
// (z = 1) and m >= 1. Throughout the loop the pair (R, RP) keeps the
// invariant RP - R = P; the scalar bit only decides which slot is doubled
// and which receives the differential sum.
func Multiply(group *curve.Group, m *big.Int, p *curve.Point) (*curve.Point, error) {
	// Read the difference coordinate from P before writing anything, in
	// case P aliases the result.
	px := new(big.Int).Set(p.X)

	r := p.Copy()
	rp := DoublePoint(group, r)
	rp, err := randomizePoint(group, rp)
	if err != nil {
		return nil, err
	}

	sel := [2]*curve.Point{r, rp}
	for i := m.BitLen() - 2; i >= 0; i-- {
		di := m.Bit(i)
		sum := AddPoints(group, sel[0], sel[1], px)
		sel[di] = DoublePoint(group, sel[di])
		sel[(di+1)%2] = sum
	}

	return NormalizePoint(group, sel[0])
}

// NormalizePoint brings an x/z pair to affine form: x = x / z, z = 1. The
// inversion uses Fermat's little theorem, z^(p-2), which holds because every
// shipped modulus is prime; extended Euclidean would not run in constant
// time.
func NormalizePoint(group *curve.Group, point *curve.Point) (*curve.Point, error) {
	exponent := new(big.Int).Sub(group.P, big2)
	zI := new(big.Int).Exp(group.ModP(point.Z), exponent, group.P)

	newPoint := point.Copy()
	newPoint.X = group.ModP(new(big.Int).Mul(point.X, zI))
	newPoint.Z = big.NewInt(1)
	return newPoint, nil
}

// DoublePoint doubles an x/z point:
// x' = (x^2 - z^2)^2, z' = 4xz(x^2 + a*xz + z^2).
func DoublePoint(group *curve.Group, point *curve.Point) *curve.Point {
	xSquared := new(big.Int).Mul(point.X, point.X)
	zSquared := new(big.Int).Mul(point.Z, point.Z)
	xz := new(big.Int).Mul(point.X, point.Z)

	diff := new(big.Int).Sub(xSquared, zSquared)
	x := group.ModP(new(big.Int).Mul(diff, diff))

	inner := new(big.Int).Mul(group.A, xz)
	inner.Add(inner, xSquared).Add(inner, zSquared)
	z := new(big.Int).Mul(big4, xz)
	z = group.ModP(z.Mul(z, inner))

	return &curve.Point{X: x, Z: z}
}

// AddPoints is the differential addition of two x/z points whose difference
// has the affine x-coordinate gx:
// x' = 4(x2 x1 - z2 z1)^2, z' = 4(x2 z1 - z2 x1)^2 * gx.
func AddPoints(group *curve.Group, first *curve.Point, second *curve.Point, gx *big.Int) *curve.Point {
	xMult := new(big.Int).Sub(
		new(big.Int).Mul(second.X, first.X),
		new(big.Int).Mul(second.Z, first.Z),
	)
	zMult := new(big.Int).Sub(
		new(big.Int).Mul(second.X, first.Z),
		new(big.Int).Mul(second.Z, first.X),
	)

	x := new(big.Int).Mul(big4, new(big.Int).Mul(xMult, xMult))
	z := new(big.Int).Mul(big4, new(big.Int).Mul(zMult, zMult))
	z.Mul(z, gx)

	return &curve.Point{X: group.ModP(x), Z: group.ModP(z)}
}

// randomizePoint masks projective x/z coordinates with a fresh scalar l,
// 1 < l < p: (X, Z) -> (l X, l Z). Countermeasure from Coron, CHES 1999.
func randomizePoint(group *curve.Group, point *curve.Point) (*curve.Point, error) {
	l, err := primes.RandomOdd(group.P.BitLen())
	if err != nil {
		return nil, err
	}
	for l.Cmp(group.P) >= 0 {
		l.Rsh(l, 1)
	}
	if l.Cmp(big1) <= 0 {
		l.Add(l, big2)
	}

	newPoint := point.Copy()
	newPoint.X = group.ModP(new(big.Int).Mul(point.X, l))
	newPoint.Z = group.ModP(new(big.Int).Mul(point.Z, l))
	return newPoint, nil
}
