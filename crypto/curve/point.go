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

package curve

import (
	"fmt"
	"math/big"
)

// Point is a curve point in projective coordinates. For short-Weierstrass
// curves the triple (X, Y, Z) is Jacobian and represents the affine point
// (X/Z^2, Y/Z^3). For Montgomery curves only the x/z pair is carried and Y
// is nil. Coordinates are signed: intermediate subtractions may leave them
// negative until the next centred reduction.
type Point struct {
	X *big.Int
	Y *big.Int
	Z *big.Int
}

// NewPoint creates an affine point (z = 1). y may be nil for Montgomery x/z
// points.
func NewPoint(x *big.Int, y *big.Int) *Point {
	p := &Point{
		X: new(big.Int).Set(x),
		Z: big.NewInt(1),
	}
	if y != nil {
		p.Y = new(big.Int).Set(y)
	}
	return p
}

// NewIdentity returns the group identity, encoded as z = 0.
func NewIdentity() *Point {
	return &Point{
		X: big.NewInt(1),
		Y: big.NewInt(1),
		Z: big.NewInt(0),
	}
}

// IsIdentity checks if the point is the identity element.
func (p *Point) IsIdentity() bool {
	return p.Z.Sign() == 0
}

// Copy copies the point.
func (p *Point) Copy() *Point {
	n := &Point{
		X: new(big.Int).Set(p.X),
		Z: new(big.Int).Set(p.Z),
	}
	if p.Y != nil {
		n.Y = new(big.Int).Set(p.Y)
	}
	return n
}

// Equal checks coordinate-wise equality. Points must be normalized first for
// this to mean curve-point equality.
func (p *Point) Equal(p1 *Point) bool {
	if p.X.Cmp(p1.X) != 0 || p.Z.Cmp(p1.Z) != 0 {
		return false
	}
	if (p.Y == nil) != (p1.Y == nil) {
		return false
	}
	if p.Y == nil {
		return true
	}
	return p.Y.Cmp(p1.Y) == 0
}

// String returns the string format of the point.
func (p *Point) String() string {
	if p.Y == nil {
		return fmt.Sprintf("(x, z) = (%s, %s)", p.X, p.Z)
	}
	return fmt.Sprintf("(x, y, z) = (%s, %s, %s)", p.X, p.Y, p.Z)
}
