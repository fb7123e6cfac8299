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

// Package ecdsa signs and verifies messages over the registered
// short-Weierstrass groups. The caller is expected to have hashed and
// truncated the message to the bit length of the group order; signatures
// are plain (r, s) pairs without ASN.1 framing.
package ecdsa

import (
	"errors"
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/ecc"
	"github.com/BHouwens/cryptofun/crypto/utils"
)

var (
	// ErrSignatureFailure is returned if signing produced r = 0 or s = 0.
	ErrSignatureFailure = errors.New("signature generation failed")
	// ErrVerificationFailed is returned if the signature does not match.
	ErrVerificationFailed = errors.New("verification failed")

	big1 = big.NewInt(1)
)

// ECDSA signs with its own keypair and verifies against its public point.
type ECDSA struct {
	keypair *ecc.Keypair
}

// Signature is a signature pair, each component in [1, n-1].
type Signature struct {
	R *big.Int
	S *big.Int
}

// New sets up a fresh keypair over the given group.
func New(group *curve.Group) (*ECDSA, error) {
	keypair := ecc.NewKeypair(group)
	if err := keypair.Setup(); err != nil {
		return nil, err
	}
	return &ECDSA{keypair: keypair}, nil
}

// PublicKey returns the signing public point.
func (e *ECDSA) PublicKey() *curve.Point {
	return e.keypair.Q.Copy()
}

// Sign signs the little-endian message integer with a fresh ephemeral
// scalar.
func (e *ECDSA) Sign(message []byte) (*Signature, error) {
	group := e.keypair.Group

	// The ephemeral scalar follows the same rule as a private key.
	k, err := e.keypair.GeneratePrivateValue()
	if err != nil {
		return nil, err
	}
	k.Mod(k, group.N)

	p, err := e.keypair.MultiplyPoint(group.G, k)
	if err != nil {
		return nil, err
	}

	r := new(big.Int).Mod(p.X, group.N)
	if r.Sign() == 0 {
		return nil, ErrSignatureFailure
	}

	msg := new(big.Int).Mod(utils.FromBytesLE(message), group.N)

	// S = K^-1 (E + D * R) mod N
	kInv, err := utils.ModularInverse(k, group.N)
	if err != nil {
		return nil, err
	}
	s := new(big.Int).Mul(e.keypair.D, r)
	s.Add(s, msg)
	s.Mul(s, kInv)
	s.Mod(s, group.N)

	if s.Sign() == 0 {
		return nil, ErrSignatureFailure
	}

	return &Signature{R: r, S: s}, nil
}

// Verify checks the signature against the keypair's public point.
func (e *ECDSA) Verify(message []byte, signature *Signature) error {
	group := e.keypair.Group

	// Step 1: make sure R and S are in range 1..N-1.
	if signature.R.Cmp(big1) < 0 || signature.R.Cmp(group.N) >= 0 ||
		signature.S.Cmp(big1) < 0 || signature.S.Cmp(group.N) >= 0 {
		return ErrVerificationFailed
	}

	msg := new(big.Int).Mod(utils.FromBytesLE(message), group.N)

	// Step 2: W = S^-1 mod N, U1 = E * W, U2 = R * W.
	w, err := utils.ModularInverse(signature.S, group.N)
	if err != nil {
		return ErrVerificationFailed
	}
	u1 := new(big.Int).Mul(msg, w)
	u1.Mod(u1, group.N)
	u2 := new(big.Int).Mul(signature.R, w)
	u2.Mod(u2, group.N)

	// Step 3: R = U1 G + U2 Q.
	p, err := e.keypair.MultiplyPoint(group.G, u1)
	if err != nil {
		return err
	}
	s, err := e.keypair.MultiplyPoint(e.keypair.Q, u2)
	if err != nil {
		return err
	}
	sum, err := e.keypair.AddPoints(p, s)
	if err != nil {
		return err
	}
	if sum.IsIdentity() {
		return ErrVerificationFailed
	}
	if sum, err = e.keypair.Normalize(sum); err != nil {
		return err
	}

	// Step 4: accept iff the reduced x-coordinate equals R.
	v := new(big.Int).Mod(sum.X, group.N)
	if v.Cmp(signature.R) != 0 {
		return ErrVerificationFailed
	}
	return nil
}
