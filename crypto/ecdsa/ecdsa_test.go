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
package ecdsa

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/BHouwens/cryptofun/crypto/curve"
)

func TestECDSA(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ECDSA Suite")
}

var message = []byte("cc0729464e9e4cefa70d7b8eb9b4d6b1b2e4d44fcb3f6d55")

var _ = Describe("Sign and Verify", func() {
	DescribeTable("round-trips a signature", func(newGroup func() *curve.Group) {
		signer, err := New(newGroup())
		Expect(err).Should(BeNil())

		signature, err := signer.Sign(message)
		Expect(err).Should(BeNil())
		Expect(signature.R.Cmp(big.NewInt(1)) >= 0).Should(BeTrue())
		Expect(signature.S.Cmp(big.NewInt(1)) >= 0).Should(BeTrue())

		Expect(signer.Verify(message, signature)).Should(BeNil())
	},
		Entry("BP256R1", curve.BP256R1),
		Entry("BP384R1", curve.BP384R1),
		Entry("S256", curve.S256),
	)

	It("produces distinct signatures for the same message", func() {
		signer, err := New(curve.S256())
		Expect(err).Should(BeNil())

		first, err := signer.Sign(message)
		Expect(err).Should(BeNil())
		second, err := signer.Sign(message)
		Expect(err).Should(BeNil())

		Expect(first.R.Cmp(second.R)).ShouldNot(BeZero())
		Expect(signer.Verify(message, first)).Should(BeNil())
		Expect(signer.Verify(message, second)).Should(BeNil())
	})

	It("rejects a tampered message", func() {
		signer, err := New(curve.BP256R1())
		Expect(err).Should(BeNil())

		signature, err := signer.Sign(message)
		Expect(err).Should(BeNil())

		tampered := append([]byte{}, message...)
		tampered[0] ^= 0x01
		Expect(signer.Verify(tampered, signature)).Should(Equal(ErrVerificationFailed))
	})

	It("rejects tampered signature components", func() {
		signer, err := New(curve.S256())
		Expect(err).Should(BeNil())

		signature, err := signer.Sign(message)
		Expect(err).Should(BeNil())

		badR := &Signature{R: new(big.Int).Add(signature.R, big.NewInt(1)), S: signature.S}
		Expect(signer.Verify(message, badR)).Should(Equal(ErrVerificationFailed))

		badS := &Signature{R: signature.R, S: new(big.Int).Add(signature.S, big.NewInt(1))}
		Expect(signer.Verify(message, badS)).Should(Equal(ErrVerificationFailed))
	})

	It("rejects out-of-range signature components", func() {
		signer, err := New(curve.S256())
		Expect(err).Should(BeNil())
		n := signer.keypair.Group.N

		signature, err := signer.Sign(message)
		Expect(err).Should(BeNil())

		Expect(signer.Verify(message, &Signature{R: big.NewInt(0), S: signature.S})).
			Should(Equal(ErrVerificationFailed))
		Expect(signer.Verify(message, &Signature{R: signature.R, S: new(big.Int).Set(n)})).
			Should(Equal(ErrVerificationFailed))
	})
})
