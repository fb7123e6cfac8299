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

// Package dh implements Diffie-Hellman key agreement over prime fields with
// discrete-log-safe parameters and blinded secret derivation.
package dh

import (
	"errors"
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/primes"
	"github.com/BHouwens/cryptofun/crypto/utils"
)

// maxBlindingRetries bounds the search for a fresh blinding value.
const maxBlindingRetries = 10

var (
	// ErrInvalidParameter is returned if a public value violates 2 <= v <= p-2.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrBlindingFailure is returned if no usable blinding value was found.
	ErrBlindingFailure = errors.New("blinding generation failed")

	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// DiffieHellman holds one party's parameters and state. The blinding pair
// mutates on every shared-key derivation, so a value must not be shared
// across goroutines.
type DiffieHellman struct {
	P  *big.Int // prime modulus
	G  *big.Int // generator
	GX *big.Int // own public value, G^X mod P
	GY *big.Int // peer public value

	// SharedKey is the last derived secret, GY^X mod P.
	SharedKey *big.Int

	x  *big.Int // private value
	px *big.Int // the X the blinding pair was built for
	vi *big.Int // blinding value
	vf *big.Int // un-blinding value
}

// New creates an empty engine; Setup generates fresh group parameters.
func New() *DiffieHellman {
	return &DiffieHellman{}
}

// NewFromPeer creates an engine over a peer's group parameters. Setup then
// only generates the private half.
func NewFromPeer(peerP *big.Int, peerG *big.Int, peerGX *big.Int) *DiffieHellman {
	return &DiffieHellman{
		P:  new(big.Int).Set(peerP),
		G:  new(big.Int).Set(peerG),
		GY: new(big.Int).Set(peerGX),
	}
}

// Setup generates any group parameter not inherited from a peer as a
// discrete-log-safe prime of the given bit length, then derives the private
// value and GX = G^X mod P.
func (d *DiffieHellman) Setup(bitlength int) error {
	var err error
	if d.G == nil || d.G.Sign() == 0 {
		if d.G, err = primes.GenerateDiscreteLogSafe(bitlength); err != nil {
			return err
		}
	}
	if d.P == nil || d.P.Sign() == 0 {
		if d.P, err = primes.GenerateDiscreteLogSafe(bitlength); err != nil {
			return err
		}
	}

	// Redraw X until the public value also lands in range, so GX = G^X
	// always holds.
	for {
		if d.x, err = d.generatePrivateX(bitlength); err != nil {
			return err
		}
		d.GX = new(big.Int).Exp(d.G, d.x, d.P)
		if d.checkRange(d.GX) == nil {
			return nil
		}
	}
}

// GenerateSharedKey derives (peerGX)^X mod P. Blinding kicks in
// automatically when the private value is re-used and costs nothing
// otherwise.
func (d *DiffieHellman) GenerateSharedKey(peerGX *big.Int) (*big.Int, error) {
	if err := d.checkRange(peerGX); err != nil {
		return nil, err
	}
	d.GY = new(big.Int).Set(peerGX)

	if err := d.updateBlinding(); err != nil {
		return nil, err
	}

	key := new(big.Int).Mul(peerGX, d.vi)
	key.Mod(key, d.P)

	shared := key.Exp(key, d.x, d.P)
	shared.Mul(shared, d.vf)
	d.SharedKey = shared.Mod(shared, d.P)

	return new(big.Int).Set(d.SharedKey), nil
}

// checkRange verifies the sanity of a public value in relation to the
// modulus: 2 <= v <= P-2, ruling out the small-subgroup values.
func (d *DiffieHellman) checkRange(v *big.Int) error {
	if v.Cmp(big2) < 0 || v.Cmp(new(big.Int).Sub(d.P, big2)) > 0 {
		return ErrInvalidParameter
	}
	return nil
}

// generatePrivateX draws a discrete-log-safe prime and halves it until it is
// below the modulus.
func (d *DiffieHellman) generatePrivateX(bitlength int) (*big.Int, error) {
	for {
		x, err := primes.GenerateDiscreteLogSafe(bitlength)
		if err != nil {
			return nil, err
		}
		for x.Cmp(d.P) >= 0 {
			x.Rsh(x, 1)
		}
		if d.checkRange(x) == nil {
			return x, nil
		}
	}
}

// updateBlinding maintains the blinding pair per section 10 of Kocher,
// CRYPTO '96: no blinding on the first use of an X, squaring when a pair
// already exists, fresh generation otherwise.
func (d *DiffieHellman) updateBlinding() error {
	// First time this X is used: remember it and skip blinding once.
	if d.px == nil || d.px.Cmp(d.x) != 0 {
		d.px = new(big.Int).Set(d.x)
		d.vi = big.NewInt(1)
		d.vf = big.NewInt(1)
		return nil
	}

	// Existing values can be re-used by squaring them.
	if d.vi.Cmp(big1) != 0 {
		d.vi.Mul(d.vi, d.vi).Mod(d.vi, d.P)
		d.vf.Mul(d.vf, d.vf).Mod(d.vf, d.P)
		return nil
	}

	// Generate from scratch: Vi = random(2, P-1), Vf = (Vi^-1)^X mod P.
	found := false
	for count := 0; count < maxBlindingRetries; count++ {
		vi, err := primes.RandomOdd(d.P.BitLen())
		if err != nil {
			return err
		}
		for vi.Cmp(d.P) >= 0 {
			vi.Rsh(vi, 1)
		}
		if vi.Cmp(big1) > 0 {
			d.vi = vi
			found = true
			break
		}
	}
	if !found {
		return ErrBlindingFailure
	}

	vf, err := utils.ModularInverse(d.vi, d.P)
	if err != nil {
		return err
	}
	d.vf = vf.Exp(vf, d.x, d.P)
	return nil
}
