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

// Package ecc builds elliptic-curve keypairs and dispatches point operations
// on the curve shape. It is the mathematical base for the ECDH and ECDSA
// engines rather than a standalone cryptosystem.
package ecc

import (
	"errors"
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/comb"
	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/jacobian"
	"github.com/BHouwens/cryptofun/crypto/montgomery"
	"github.com/BHouwens/cryptofun/crypto/primes"
)

// maxPrivateValueRetries bounds the rejection sampling of a Weierstrass
// private value. A try fails when the value is not below n. The candidate's
// top bit is always set, so a try fails about 67% of the time on BP256R1
// and about 90% on BP384R1; 30 tries then all fail with probability about
// 7e-6 and 0.04 respectively. On S256 and P521 tries practically never fail.
const maxPrivateValueRetries = 30

var (
	// ErrPrivateScalarGenFailure is returned if no private value lands in [1, n-1].
	ErrPrivateScalarGenFailure = errors.New("private scalar generation failed")
	// ErrKeypairInvalid is returned if a generated keypair fails its own sanity checks.
	ErrKeypairInvalid = errors.New("invalid keypair")
	// ErrPeerPointInvalid is returned if a public point fails the range or on-curve check.
	ErrPeerPointInvalid = errors.New("invalid public point")

	big1 = big.NewInt(1)
	big3 = big.NewInt(3)
)

// Keypair is an elliptic-curve keypair: the group, the private value d and
// the public point q = d * g. All fields are public because the pair serves
// as a base for other cryptographic processes, not as an isolated system.
type Keypair struct {
	Group *curve.Group
	D     *big.Int
	Q     *curve.Point
}

// NewKeypair creates an empty keypair over the given group. Setup must be
// called before use.
func NewKeypair(group *curve.Group) *Keypair {
	return &Keypair{
		Group: group,
		D:     big.NewInt(0),
		Q:     curve.NewIdentity(),
	}
}

// Setup generates the private value, derives the public point and validates
// both halves.
func (kp *Keypair) Setup() error {
	d, err := kp.GeneratePrivateValue()
	if err != nil {
		return err
	}
	kp.D = d

	kp.Q, err = kp.Multiply()
	if err != nil {
		return err
	}

	if err := kp.checkPrivateKey(); err != nil {
		return err
	}
	if err := kp.CheckPublicKey(kp.Q); err != nil {
		return ErrKeypairInvalid
	}
	return nil
}

// Multiply computes q = d * g with the shape-appropriate multiplier.
func (kp *Keypair) Multiply() (*curve.Point, error) {
	return kp.MultiplyPoint(kp.Group.G, kp.D)
}

// MultiplyPoint multiplies the supplied affine point with the supplied
// scalar.
func (kp *Keypair) MultiplyPoint(p *curve.Point, m *big.Int) (*curve.Point, error) {
	switch kp.Group.Shape {
	case curve.Montgomery:
		return montgomery.Multiply(kp.Group, m, p)
	default:
		return comb.Multiply(kp.Group, m, p)
	}
}

// AddPoints adds two points. For short-Weierstrass curves both operands are
// normalized first and the P == Q and P == -Q cases are resolved here, since
// the Jacobian mixed add only supports the comb schedule's disjoint inputs.
func (kp *Keypair) AddPoints(p *curve.Point, r *curve.Point) (*curve.Point, error) {
	if kp.Group.Shape == curve.Montgomery {
		return montgomery.AddPoints(kp.Group, p, r, kp.Group.G.X), nil
	}

	pn, err := jacobian.Normalize(kp.Group, p)
	if err != nil {
		return nil, err
	}
	rn, err := jacobian.Normalize(kp.Group, r)
	if err != nil {
		return nil, err
	}

	if pn.IsIdentity() {
		return rn, nil
	}
	if rn.IsIdentity() {
		return pn, nil
	}
	if pn.X.Cmp(rn.X) == 0 {
		if pn.Y.Cmp(rn.Y) == 0 {
			return jacobian.Double(kp.Group, pn), nil
		}
		return curve.NewIdentity(), nil
	}
	return jacobian.Add(kp.Group, pn, rn), nil
}

// Normalize brings a point to affine form with the shape-appropriate
// normalisation.
func (kp *Keypair) Normalize(point *curve.Point) (*curve.Point, error) {
	if kp.Group.Shape == curve.Montgomery {
		return montgomery.NormalizePoint(kp.Group, point)
	}
	return jacobian.Normalize(kp.Group, point)
}

// GeneratePrivateValue draws a private value valid for the group shape.
//
// Weierstrass values draw an odd nbits-bit candidate with its top bit set,
// shift it right by 8*ceil(nbits/8) - nbits bits (no shift for byte-aligned
// sizes, 7 bits for P521, leaving a 514-bit value) and retry until the
// result is in [1, n-1]. Montgomery values have exactly nbits bits with the
// lowest three cleared.
func (kp *Keypair) GeneratePrivateValue() (*big.Int, error) {
	group := kp.Group

	if group.Shape == curve.Montgomery {
		d, err := primes.RandomOdd(group.Nbits)
		if err != nil {
			return nil, err
		}
		for d.BitLen() > group.Nbits {
			d.Rsh(d, 1)
		}
		d.SetBit(d, 0, 0)
		d.SetBit(d, 1, 0)
		d.SetBit(d, 2, 0)
		d.SetBit(d, group.Nbits-1, 1)
		return d, nil
	}

	nSize := (group.Nbits + 7) / 8
	for count := 0; count < maxPrivateValueRetries; count++ {
		d, err := primes.RandomOdd(group.Nbits)
		if err != nil {
			return nil, err
		}
		d.Rsh(d, uint(8*nSize-group.Nbits))

		if d.Cmp(big1) >= 0 && d.Cmp(group.N) < 0 {
			return d, nil
		}
	}
	return nil, ErrPrivateScalarGenFailure
}

// CheckPublicKey checks that a point is valid as a public key for this
// group.
func (kp *Keypair) CheckPublicKey(point *curve.Point) error {
	// Must use affine coordinates.
	if point.Z.Cmp(big1) != 0 {
		return ErrPeerPointInvalid
	}

	if kp.Group.Shape == curve.Montgomery {
		if (point.X.BitLen()+7)/8 > (kp.Group.Nbits+7)/8 {
			return ErrPeerPointInvalid
		}
		return nil
	}
	return kp.checkWeierstrassPublicKey(point)
}

func (kp *Keypair) checkPrivateKey() error {
	group := kp.Group

	if group.Shape == curve.Montgomery {
		if kp.D.Bit(0) != 0 || kp.D.Bit(1) != 0 || kp.D.Bit(2) != 0 || kp.D.BitLen() != group.Nbits {
			return ErrKeypairInvalid
		}
		return nil
	}

	if kp.D.Cmp(big1) < 0 || kp.D.Cmp(group.N) >= 0 {
		return ErrKeypairInvalid
	}
	return nil
}

// checkWeierstrassPublicKey validates an affine point per SEC1 3.2.3.1:
// coordinates in [0, p) and y^2 = x(x^2 + a) + b.
func (kp *Keypair) checkWeierstrassPublicKey(point *curve.Point) error {
	group := kp.Group
	if point.Y == nil {
		return ErrPeerPointInvalid
	}
	if point.X.Sign() < 0 || point.Y.Sign() < 0 ||
		point.X.Cmp(group.P) >= 0 || point.Y.Cmp(group.P) >= 0 {
		return ErrPeerPointInvalid
	}

	ySquared := group.ModP(new(big.Int).Mul(point.Y, point.Y))
	rhs := group.ModP(new(big.Int).Mul(point.X, point.X))

	if group.AIsMinusThree() {
		rhs = group.ModIncrease(new(big.Int).Sub(rhs, big3))
	} else {
		rhs = group.ModReduce(new(big.Int).Add(rhs, group.A))
	}

	rhs = group.ModP(new(big.Int).Mul(rhs, point.X))
	rhs = group.ModReduce(new(big.Int).Add(rhs, group.B))

	if rhs.Cmp(ySquared) != 0 {
		return ErrPeerPointInvalid
	}
	return nil
}
