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
package ecc

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/BHouwens/cryptofun/crypto/curve"
)

func TestECC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ECC Suite")
}

var _ = Describe("Keypair setup", func() {
	DescribeTable("generates a valid keypair", func(group *curve.Group) {
		kp := NewKeypair(group)
		Expect(kp.Setup()).Should(BeNil())

		Expect(kp.Q.Z.Cmp(big.NewInt(1))).Should(BeZero())
		Expect(kp.CheckPublicKey(kp.Q)).Should(BeNil())

		if group.Shape == curve.Montgomery {
			Expect(kp.D.BitLen()).Should(Equal(group.Nbits))
			Expect(kp.D.Bit(0)).Should(Equal(uint(0)))
			Expect(kp.D.Bit(1)).Should(Equal(uint(0)))
			Expect(kp.D.Bit(2)).Should(Equal(uint(0)))
		} else {
			Expect(kp.D.Cmp(big.NewInt(1)) >= 0).Should(BeTrue())
			Expect(kp.D.Cmp(group.N) < 0).Should(BeTrue())
		}
	},
		Entry("BP256R1", curve.BP256R1()),
		Entry("BP384R1", curve.BP384R1()),
		Entry("P521", curve.P521()),
		Entry("S256", curve.S256()),
		Entry("Curve25519", curve.Curve25519()),
	)
})

var _ = Describe("CheckPublicKey", func() {
	It("rejects non-affine points", func() {
		kp := NewKeypair(curve.BP256R1())
		point := kp.Group.G.Copy()
		point.Z = big.NewInt(2)
		Expect(kp.CheckPublicKey(point)).Should(Equal(ErrPeerPointInvalid))
	})

	It("rejects off-curve points", func() {
		kp := NewKeypair(curve.S256())
		point := kp.Group.G.Copy()
		point.Y = new(big.Int).Add(point.Y, big.NewInt(1))
		Expect(kp.CheckPublicKey(point)).Should(Equal(ErrPeerPointInvalid))
	})

	It("rejects out-of-range coordinates", func() {
		kp := NewKeypair(curve.BP256R1())
		point := kp.Group.G.Copy()
		point.X = new(big.Int).Add(point.X, kp.Group.P)
		Expect(kp.CheckPublicKey(point)).Should(Equal(ErrPeerPointInvalid))
	})

	It("rejects oversized Montgomery x coordinates", func() {
		kp := NewKeypair(curve.Curve25519())
		point := curve.NewPoint(new(big.Int).Lsh(big.NewInt(1), 300), nil)
		Expect(kp.CheckPublicKey(point)).Should(Equal(ErrPeerPointInvalid))
	})

	It("accepts the base point", func() {
		for _, group := range []*curve.Group{curve.BP256R1(), curve.Curve25519()} {
			kp := NewKeypair(group)
			Expect(kp.CheckPublicKey(group.G)).Should(BeNil())
		}
	})
})

var _ = Describe("AddPoints", func() {
	It("doubles when both operands are equal", func() {
		kp := NewKeypair(curve.S256())
		g := kp.Group.G

		sum, err := kp.AddPoints(g, g.Copy())
		Expect(err).Should(BeNil())
		doubled, err := kp.Normalize(sum)
		Expect(err).Should(BeNil())

		viaMult, err := kp.MultiplyPoint(g, big.NewInt(2))
		Expect(err).Should(BeNil())
		Expect(doubled.Equal(viaMult)).Should(BeTrue())
	})

	It("returns the identity for P + (-P)", func() {
		kp := NewKeypair(curve.BP256R1())
		g := kp.Group.G
		negated := g.Copy()
		negated.Y = new(big.Int).Sub(kp.Group.P, g.Y)

		sum, err := kp.AddPoints(g, negated)
		Expect(err).Should(BeNil())
		Expect(sum.IsIdentity()).Should(BeTrue())
	})

	It("matches scalar multiplication for G + 2G", func() {
		kp := NewKeypair(curve.BP256R1())
		g := kp.Group.G

		g2, err := kp.MultiplyPoint(g, big.NewInt(2))
		Expect(err).Should(BeNil())

		sum, err := kp.AddPoints(g, g2)
		Expect(err).Should(BeNil())
		normalized, err := kp.Normalize(sum)
		Expect(err).Should(BeNil())

		g3, err := kp.MultiplyPoint(g, big.NewInt(3))
		Expect(err).Should(BeNil())
		Expect(normalized.Equal(g3)).Should(BeTrue())
	})
})
