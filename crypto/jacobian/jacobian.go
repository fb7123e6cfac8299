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

// Package jacobian implements point arithmetic for short-Weierstrass curves
// in Jacobian coordinates, where (X, Y, Z) represents the affine point
// (X/Z^2, Y/Z^3). Inversions are traded for multiplications; a single
// inversion happens at normalization.
package jacobian

import (
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/primes"
	"github.com/BHouwens/cryptofun/crypto/utils"
)

var (
	big1 = big.NewInt(1)
	big3 = big.NewInt(3)
)

// Normalize brings a point to affine form: Z == 0 stays the identity,
// otherwise X = X/Z^2, Y = Y/Z^3 and Z = 1 (GECC 3.2.1). Cost 1I + 3M + 1S.
func Normalize(group *curve.Group, point *curve.Point) (*curve.Point, error) {
	if point.IsIdentity() {
		return point.Copy(), nil
	}

	zI, err := utils.ModularInverseInt(point.Z, group.P)
	if err != nil {
		return nil, err
	}
	zzI := group.ModP(new(big.Int).Mul(zI, zI))

	newPoint := point.Copy()
	newPoint.X = group.ModP(new(big.Int).Mul(point.X, zzI))

	yI := group.ModP(new(big.Int).Mul(point.Y, zzI))
	newPoint.Y = group.ModP(new(big.Int).Mul(yI, zI))

	newPoint.Z = big.NewInt(1)
	return newPoint, nil
}

// NormalizeMany normalizes every point of the slice in place.
func NormalizeMany(group *curve.Group, points []*curve.Point) error {
	for i := range points {
		normalized, err := Normalize(group, points[i])
		if err != nil {
			return err
		}
		points[i] = normalized
	}
	return nil
}

// Invert maps a point to its inverse (X, P-Y, Z), leaving Y = 0 untouched.
func Invert(group *curve.Group, point *curve.Point) *curve.Point {
	newPoint := point.Copy()
	if point.Y.Sign() != 0 {
		newPoint.Y = new(big.Int).Sub(group.P, point.Y)
	}
	return newPoint
}

// Double computes R = 2P.
//
// Cost: 3M + 4S when A == 0, 4M + 4S when A == -3, 3M + 6S + 1a otherwise.
func Double(group *curve.Group, point *curve.Point) *curve.Point {
	var m *big.Int

	if group.AIsMinusThree() {
		// M = 3(X - Z^2)(X + Z^2)
		s := group.ModP(new(big.Int).Mul(point.Z, point.Z))
		t := group.ModIncrease(new(big.Int).Sub(point.X, s))
		u := group.ModReduce(new(big.Int).Add(point.X, s))
		s = group.ModP(new(big.Int).Mul(t, u))
		m = group.ModReduce(new(big.Int).Mul(s, big3))
	} else {
		// M = 3X^2
		s := group.ModP(new(big.Int).Mul(point.X, point.X))
		m = group.ModReduce(new(big.Int).Mul(s, big3))

		if group.A.Sign() != 0 {
			// M += A Z^4
			s = group.ModP(new(big.Int).Mul(point.Z, point.Z))
			t := group.ModP(new(big.Int).Mul(s, s))
			s = group.ModP(new(big.Int).Mul(t, group.A))
			m = group.ModReduce(new(big.Int).Add(m, s))
		}
	}

	// S = 4 X Y^2
	t := group.ModP(new(big.Int).Mul(point.Y, point.Y))
	t = group.ModReduce(new(big.Int).Lsh(t, 1))
	s := group.ModP(new(big.Int).Mul(point.X, t))
	s = group.ModReduce(new(big.Int).Lsh(s, 1))

	// U = 8 Y^4
	u := group.ModP(new(big.Int).Mul(t, t))
	u = group.ModReduce(new(big.Int).Lsh(u, 1))

	// T = M^2 - 2S
	t = group.ModP(new(big.Int).Mul(m, m))
	t = group.ModIncrease(new(big.Int).Sub(t, s))
	t = group.ModIncrease(new(big.Int).Sub(t, s))

	// S = M(S - T) - U
	s = group.ModIncrease(new(big.Int).Sub(s, t))
	s = group.ModP(new(big.Int).Mul(s, m))
	s = group.ModIncrease(new(big.Int).Sub(s, u))

	// U = 2 Y Z
	z := group.ModP(new(big.Int).Mul(point.Y, point.Z))
	z = group.ModReduce(new(big.Int).Lsh(z, 1))

	return &curve.Point{X: t, Y: s, Z: z}
}

// Add computes R = P + Q in mixed affine-Jacobian coordinates (GECC 3.22).
// Q must be affine (z = 1); R is not normalized.
//
// The cases P == Q and P == -Q are intentionally not handled: inside the
// comb schedule P is an even multiple of the base point and Q an odd one,
// so neither can occur. Callers outside that schedule must branch first.
//
// Cost: 8M + 3S.
func Add(group *curve.Group, p *curve.Point, q *curve.Point) *curve.Point {
	if p.IsIdentity() {
		return q.Copy()
	}
	if q.IsIdentity() {
		return p.Copy()
	}

	t1 := group.ModP(new(big.Int).Mul(p.Z, p.Z))
	t2 := group.ModP(new(big.Int).Mul(t1, p.Z))

	t1 = group.ModP(new(big.Int).Mul(t1, q.X))
	t2 = group.ModP(new(big.Int).Mul(t2, q.Y))
	t1 = group.ModIncrease(new(big.Int).Sub(t1, p.X))
	t2 = group.ModIncrease(new(big.Int).Sub(t2, p.Y))

	z := group.ModP(new(big.Int).Mul(p.Z, t1))
	t3 := group.ModP(new(big.Int).Mul(t1, t1))
	t4 := group.ModP(new(big.Int).Mul(t3, t1))

	t3 = group.ModP(new(big.Int).Mul(t3, p.X))
	t1 = group.ModReduce(new(big.Int).Lsh(t3, 1))

	x := group.ModP(new(big.Int).Mul(t2, t2))
	x = group.ModIncrease(new(big.Int).Sub(x, t1))
	x = group.ModIncrease(new(big.Int).Sub(x, t4))

	t3 = group.ModIncrease(new(big.Int).Sub(t3, x))
	t3 = group.ModP(new(big.Int).Mul(t3, t2))
	t4 = group.ModP(new(big.Int).Mul(t4, p.Y))

	y := group.ModIncrease(new(big.Int).Sub(t3, t4))

	return &curve.Point{X: x, Y: y, Z: z}
}

// Randomize masks the projective representation with a fresh scalar l,
// 1 < l < p: (X, Y, Z) -> (l^2 X, l^3 Y, l Z). Countermeasure from Coron,
// CHES 1999.
func Randomize(group *curve.Group, point *curve.Point) (*curve.Point, error) {
	l, err := primes.RandomOdd(group.P.BitLen())
	if err != nil {
		return nil, err
	}
	for l.Cmp(group.P) >= 0 {
		l.Rsh(l, 1)
	}
	if l.Cmp(big1) <= 0 {
		l.Add(l, big1).Add(l, big1)
	}

	newPoint := point.Copy()
	newPoint.Z = group.ModP(new(big.Int).Mul(point.Z, l))

	lSquared := new(big.Int).Mul(l, l)
	newPoint.X = group.ModP(new(big.Int).Mul(point.X, lSquared))

	lCubed := new(big.Int).Mul(lSquared, l)
	newPoint.Y = group.ModP(new(big.Int).Mul(point.Y, lCubed))

	return newPoint, nil
}
