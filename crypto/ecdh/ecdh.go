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

// Package ecdh implements elliptic-curve Diffie-Hellman over both supported
// curve shapes. The shared secret is the x-coordinate of d * peerQ.
package ecdh

import (
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/ecc"
)

// ECDH holds one party's keypair and, once set, the peer's public point.
type ECDH struct {
	Group *curve.Group
	Q     *curve.Point // own public value
	Z     *big.Int     // shared secret
	PeerQ *curve.Point // peer's public value

	keypair *ecc.Keypair
}

// New sets up a fresh keypair over the given group.
func New(group *curve.Group) (*ECDH, error) {
	keypair := ecc.NewKeypair(group)
	if err := keypair.Setup(); err != nil {
		return nil, err
	}

	return &ECDH{
		Group:   group,
		Q:       keypair.Q.Copy(),
		keypair: keypair,
	}, nil
}

// GenerateSharedKey validates the peer point and derives the shared
// x-coordinate with the shape-appropriate multiplier.
func (e *ECDH) GenerateSharedKey() (*big.Int, error) {
	if err := e.checkPeerQ(); err != nil {
		return nil, err
	}

	p, err := e.keypair.MultiplyPoint(e.PeerQ, e.keypair.D)
	if err != nil {
		return nil, err
	}

	e.Z = new(big.Int).Set(p.X)
	return new(big.Int).Set(e.Z), nil
}

func (e *ECDH) checkPeerQ() error {
	if e.PeerQ == nil {
		return ecc.ErrPeerPointInvalid
	}
	return e.keypair.CheckPublicKey(e.PeerQ)
}
