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

// Package rsa implements the RSA public-key cryptosystem with an optional
// Chinese-Remainder-Theorem private path, message and exponent blinding
// against timing attacks, and a simple fixed-size chunk framing.
//
// The framing is not a standardised padding scheme; no interoperability
// with other RSA stacks is claimed.
package rsa

import (
	"errors"
	"math/big"

	"github.com/BHouwens/cryptofun/crypto/hash"
	"github.com/BHouwens/cryptofun/crypto/primes"
	"github.com/BHouwens/cryptofun/crypto/transform"
	"github.com/BHouwens/cryptofun/crypto/utils"
)

const (
	// blindingLength is the byte length of the exponent-blinding randomness.
	blindingLength = 28
	// chunkSize is the plaintext group size of the message framing.
	chunkSize = 30
	// minBitlength is the smallest permitted modulus size.
	minBitlength = 128
	// maxBlindingRetries bounds the search for a blinding value coprime to n.
	maxBlindingRetries = 10
)

var (
	// ErrInvalidParameter is returned if the bit length or public exponent is too small.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrBlindingFailure is returned if no usable blinding value was found.
	ErrBlindingFailure = errors.New("blinding generation failed")
	// ErrKeypairInvalid is returned if a sanity re-derivation disagrees with the stored key.
	ErrKeypairInvalid = errors.New("invalid keypair")

	big1 = big.NewInt(1)
	big3 = big.NewInt(3)
)

// KeyMode selects which half of the keypair an operation uses.
type KeyMode int

const (
	Public KeyMode = iota
	Private
)

// RSA holds a keypair together with its CRT acceleration values and the
// mutable blinding pair. The blinding pair evolves on every private
// operation, so an RSA value must not be shared across goroutines.
type RSA struct {
	N *big.Int // public modulus
	E *big.Int // public exponent

	d  *big.Int // private exponent
	p  *big.Int // first prime factor
	q  *big.Int // second prime factor
	dp *big.Int // d mod (p-1)
	dq *big.Int // d mod (q-1)
	qp *big.Int // q^-1 mod p

	vi *big.Int // blinding value
	vf *big.Int // un-blinding value

	useCRT bool

	// SizeN is the byte size of the modulus; ciphertext chunks are padded
	// to this length.
	SizeN int

	hashAlgorithm hash.Algorithm // only used for OAEP/PSS, stored but unused here
}

// New creates an empty RSA engine. GenerateKeypair or GenerateKeypairFromPeer
// must be called before use.
func New(hashAlgorithm hash.Algorithm, useCRT bool) *RSA {
	return &RSA{
		N:             big.NewInt(0),
		E:             big.NewInt(0),
		useCRT:        useCRT,
		hashAlgorithm: hashAlgorithm,
	}
}

// GenerateKeypair populates the keypair: two distinct primes p > q of half
// the bit length whose product has exactly bitlength bits, with
// gcd(e, (p-1)(q-1)) = 1.
func (r *RSA) GenerateKeypair(bitlength int, exponent *big.Int) (*RSA, error) {
	if err := checkInputParams(bitlength, exponent); err != nil {
		return nil, err
	}

	p, q, totient, err := totientValues(bitlength, exponent)
	if err != nil {
		return nil, err
	}

	r.E = new(big.Int).Set(exponent)
	r.p = p
	r.q = q
	r.N = new(big.Int).Mul(p, q)

	r.d, err = utils.ModularInverse(exponent, totient)
	if err != nil {
		return nil, err
	}

	p1 := new(big.Int).Sub(p, big1)
	q1 := new(big.Int).Sub(q, big1)
	r.dp = new(big.Int).Mod(r.d, p1)
	r.dq = new(big.Int).Mod(r.d, q1)
	r.qp, err = utils.ModularInverse(q, p)
	if err != nil {
		return nil, err
	}

	r.SizeN = (r.N.BitLen() + 7) / 8
	return r, nil
}

// GenerateKeypairFromPeer builds a public-only engine from a peer's exponent
// and modulus. Private operations on such an engine fail.
func (r *RSA) GenerateKeypairFromPeer(exponent *big.Int, modulus *big.Int) (*RSA, error) {
	if exponent.Cmp(big3) < 0 {
		return nil, ErrInvalidParameter
	}
	if modulus.BitLen() < minBitlength {
		return nil, ErrInvalidParameter
	}

	r.E = new(big.Int).Set(exponent)
	r.N = new(big.Int).Set(modulus)
	r.SizeN = (r.N.BitLen() + 7) / 8
	return r, nil
}

// ExportPublicValues exports the public modulus and exponent.
func (r *RSA) ExportPublicValues() (*big.Int, *big.Int) {
	return new(big.Int).Set(r.N), new(big.Int).Set(r.E)
}

// Encrypt runs the chosen key operation over the input in 30-byte groups.
// Every output chunk is zero-padded on the right to SizeN bytes, because the
// chunk boundaries would otherwise be lost on decryption.
func (r *RSA) Encrypt(data []byte, mode KeyMode) ([]byte, error) {
	encrypted := make([]byte, 0, (len(data)/chunkSize+1)*r.SizeN)

	for _, chunk := range transform.Chunks(data, chunkSize) {
		value, err := r.operate(utils.FromBytesLE(chunk), mode)
		if err != nil {
			return nil, err
		}

		bs := utils.BytesLE(value)
		for len(bs) < r.SizeN {
			bs = append(bs, 0)
		}
		encrypted = append(encrypted, bs...)
	}
	return encrypted, nil
}

// Decrypt reverses Encrypt: the ciphertext is split into SizeN groups and
// every decrypted chunk except the last is zero-padded back to the 30-byte
// group size.
func (r *RSA) Decrypt(ciphertext []byte, mode KeyMode) ([]byte, error) {
	chunks := transform.ExactChunks(ciphertext, r.SizeN)
	decrypted := make([]byte, 0, len(chunks)*chunkSize)

	for i, chunk := range chunks {
		value, err := r.operate(utils.FromBytesLE(chunk), mode)
		if err != nil {
			return nil, err
		}

		bs := utils.BytesLE(value)
		if i < len(chunks)-1 {
			for len(bs) < chunkSize {
				bs = append(bs, 0)
			}
		}
		decrypted = append(decrypted, bs...)
	}
	return decrypted, nil
}

// CheckKeypair re-derives every stored value and fails on any mismatch.
func (r *RSA) CheckKeypair() error {
	if err := r.checkPublicKey(); err != nil {
		return err
	}
	return r.checkPrivateKey()
}

func (r *RSA) operate(input *big.Int, mode KeyMode) (*big.Int, error) {
	if mode == Private {
		return r.usePrivateKey(input)
	}
	return r.usePublicKey(input), nil
}

// usePublicKey performs a public key operation, input^e mod n.
func (r *RSA) usePublicKey(input *big.Int) *big.Int {
	return new(big.Int).Exp(input, r.E, r.N)
}

// usePrivateKey performs a blinded private key operation. With CRT the
// exponentiation runs separately modulo p and q over freshly blinded copies
// of dp and dq; the stored exponents are never modified.
func (r *RSA) usePrivateKey(input *big.Int) (*big.Int, error) {
	if r.d == nil && !r.useCRT {
		return nil, ErrKeypairInvalid
	}
	if r.p == nil && r.useCRT {
		return nil, ErrKeypairInvalid
	}

	if err := r.prepareBlinding(); err != nil {
		return nil, err
	}

	// Input blinding: T = input * Vi mod N.
	t := new(big.Int).Mul(input, r.vi)
	t.Mod(t, r.N)

	if r.useCRT {
		p1 := new(big.Int).Sub(r.p, big1)
		q1 := new(big.Int).Sub(r.q, big1)

		// Exponent blinding on local copies:
		// DP' = DP + (P - 1) * R, DQ' = DQ + (Q - 1) * R'.
		rp, err := randomBlindingFactor()
		if err != nil {
			return nil, err
		}
		dpBlind := new(big.Int).Add(r.dp, new(big.Int).Mul(p1, rp))

		rq, err := randomBlindingFactor()
		if err != nil {
			return nil, err
		}
		dqBlind := new(big.Int).Add(r.dq, new(big.Int).Mul(q1, rq))

		// T1 = T^dP mod P, T2 = T^dQ mod Q
		t1 := new(big.Int).Exp(t, dpBlind, r.p)
		t2 := new(big.Int).Exp(t, dqBlind, r.q)

		// T = (T1 - T2) * (Q^-1 mod P) mod P
		// T = T2 + T * Q
		t.Sub(t1, t2)
		t.Mul(t, r.qp)
		t.Mod(t, r.p)
		t.Mul(t, r.q)
		t.Add(t, t2)
	} else {
		t.Exp(t, r.d, r.N)
	}

	// Unblind: T = T * Vf mod N.
	t.Mul(t, r.vf)
	return t.Mod(t, r.N), nil
}

// prepareBlinding generates or updates the blinding pair, following the
// optimisation in section 10 of Kocher, CRYPTO '96: once a pair exists it is
// only squared, so the expensive setup happens once per key.
func (r *RSA) prepareBlinding() error {
	if r.vf != nil && r.vf.Sign() != 0 {
		r.vi.Mul(r.vi, r.vi).Mod(r.vi, r.N)
		r.vf.Mul(r.vf, r.vf).Mod(r.vf, r.N)
		return nil
	}

	bound := new(big.Int).Lsh(big1, uint(r.SizeN-1))
	found := false
	for count := 0; count < maxBlindingRetries; count++ {
		vf, err := utils.RandomInt(bound)
		if err != nil {
			return err
		}
		if utils.IsRelativePrime(vf, r.N) {
			r.vf = vf
			found = true
			break
		}
	}
	if !found {
		return ErrBlindingFailure
	}

	// Vi = (Vf^-1)^E mod N, so that Vi^D * Vf = 1 mod N.
	vi, err := utils.ModularInverse(r.vf, r.N)
	if err != nil {
		return err
	}
	r.vi = vi.Exp(vi, r.E, r.N)
	return nil
}

func (r *RSA) checkPublicKey() error {
	if r.N.Cmp(big.NewInt(minBitlength)) < 0 {
		return ErrKeypairInvalid
	}
	if r.E.Cmp(big.NewInt(2)) < 0 || r.E.Cmp(r.N) >= 0 {
		return ErrKeypairInvalid
	}
	return nil
}

func (r *RSA) checkPrivateKey() error {
	if r.d == nil || r.p == nil || r.q == nil {
		return ErrKeypairInvalid
	}

	pq := new(big.Int).Mul(r.p, r.q)
	p1 := new(big.Int).Sub(r.p, big1)
	q1 := new(big.Int).Sub(r.q, big1)
	totient := new(big.Int).Mul(p1, q1)

	dp := new(big.Int).Mod(r.d, p1)
	dq := new(big.Int).Mod(r.d, q1)
	qp, err := utils.ModularInverse(r.q, r.p)
	if err != nil {
		return ErrKeypairInvalid
	}

	if pq.Cmp(r.N) != 0 || dp.Cmp(r.dp) != 0 || dq.Cmp(r.dq) != 0 ||
		qp.Cmp(r.qp) != 0 || !utils.IsRelativePrime(r.E, totient) {
		return ErrKeypairInvalid
	}
	return nil
}

func checkInputParams(bitlength int, exponent *big.Int) error {
	if bitlength < minBitlength {
		return ErrInvalidParameter
	}
	if exponent.Cmp(big3) < 0 {
		return ErrInvalidParameter
	}
	return nil
}

// totientValues draws primes p > q of half the requested size until
// bits(p*q) = bitlength and gcd(e, (p-1)(q-1)) = 1.
func totientValues(bitlength int, exponent *big.Int) (*big.Int, *big.Int, *big.Int, error) {
	halfBits := bitlength >> 1

	for {
		first, err := primes.Generate(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}
		second, err := primes.Generate(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}

		if first.Cmp(second) == 0 {
			continue
		}

		p, q := first, second
		if first.Cmp(second) < 0 {
			p, q = second, first
		}

		if new(big.Int).Mul(p, q).BitLen() != bitlength {
			continue
		}

		totient := new(big.Int).Mul(
			new(big.Int).Sub(p, big1),
			new(big.Int).Sub(q, big1),
		)
		if utils.IsRelativePrime(exponent, totient) {
			return p, q, totient, nil
		}
	}
}

func randomBlindingFactor() (*big.Int, error) {
	bs, err := utils.GenRandomBytes(blindingLength)
	if err != nil {
		return nil, err
	}
	return utils.FromBytesLE(bs), nil
}
