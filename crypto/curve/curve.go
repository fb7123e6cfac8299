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

// Package curve carries the named elliptic-curve groups and their field
// reduction helpers. Groups are immutable after construction except for the
// lazily populated comb table, which is derived from the base point only.
package curve

import (
	"math/big"
)

// Shape tags the curve equation family a group belongs to.
type Shape int

const (
	// ShortWeierstrass is y^2 = x^3 + ax + b over GF(p).
	ShortWeierstrass Shape = iota
	// Montgomery is by^2 = x^3 + ax^2 + x over GF(p), handled x/z-only.
	Montgomery
)

// Group is an elliptic curve group: the field prime P, the equation
// parameters A and B, the base point G of prime order N, and the bit size
// used for scalar handling. T caches comb-method precomputation for G.
type Group struct {
	Name  string
	Shape Shape

	P *big.Int
	A *big.Int
	B *big.Int
	G *Point
	N *big.Int

	Nbits int

	// T is the comb pre-table for the base point, populated on the first
	// multiplication with P = G. Shareable read-only once populated.
	T     []*Point
	TSize int
}

// ModP reduces v into [0, P).
func (g *Group) ModP(v *big.Int) *big.Int {
	return new(big.Int).Mod(v, g.P)
}

// ModReduce is the centred reduction after additions and small multiples:
// subtract P until the value is below it.
func (g *Group) ModReduce(v *big.Int) *big.Int {
	r := new(big.Int).Set(v)
	for r.Cmp(g.P) >= 0 {
		r.Sub(r, g.P)
	}
	return r
}

// ModIncrease is the centred reduction after subtractions: add P until the
// value is non-negative.
func (g *Group) ModIncrease(v *big.Int) *big.Int {
	r := new(big.Int).Set(v)
	for r.Sign() < 0 {
		r.Add(r, g.P)
	}
	return r
}

// AIsMinusThree reports whether the equation parameter A is congruent to -3,
// which the Weierstrass formulas special-case.
func (g *Group) AIsMinusThree() bool {
	aPlus3 := new(big.Int).Add(g.A, big.NewInt(3))
	return aPlus3.Cmp(g.P) == 0
}
