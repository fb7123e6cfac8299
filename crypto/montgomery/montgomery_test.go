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
package montgomery

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/crypto/primes"
)

func TestMontgomery(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Montgomery Suite")
}

var _ = Describe("Multiply", func() {
	It("returns P itself for m = 1", func() {
		group := curve.Curve25519()
		result, err := Multiply(group, big.NewInt(1), group.G)
		Expect(err).Should(BeNil())
		Expect(result.X.Cmp(group.G.X)).Should(BeZero())
		Expect(result.Z.Cmp(big.NewInt(1))).Should(BeZero())
	})

	It("matches plain doubling for m = 2", func() {
		group := curve.Curve25519()
		expected, err := NormalizePoint(group, DoublePoint(group, group.G))
		Expect(err).Should(BeNil())

		result, err := Multiply(group, big.NewInt(2), group.G)
		Expect(err).Should(BeNil())
		Expect(result.Equal(expected)).Should(BeTrue())
	})

	It("is associative across two parties", func() {
		group := curve.Curve25519()
		for i := 0; i < 3; i++ {
			a, err := primes.RandomOdd(200)
			Expect(err).Should(BeNil())
			b, err := primes.RandomOdd(200)
			Expect(err).Should(BeNil())

			aG, err := Multiply(group, a, group.G)
			Expect(err).Should(BeNil())
			bG, err := Multiply(group, b, group.G)
			Expect(err).Should(BeNil())

			abG, err := Multiply(group, b, aG)
			Expect(err).Should(BeNil())
			baG, err := Multiply(group, a, bG)
			Expect(err).Should(BeNil())

			Expect(abG.X.Cmp(baG.X)).Should(BeZero())
		}
	})

	It("is stable across randomized repetitions", func() {
		group := curve.Curve25519()
		m, err := primes.RandomOdd(250)
		Expect(err).Should(BeNil())

		first, err := Multiply(group, m, group.G)
		Expect(err).Should(BeNil())
		second, err := Multiply(group, m, group.G)
		Expect(err).Should(BeNil())
		Expect(first.Equal(second)).Should(BeTrue())
	})
})

var _ = Describe("NormalizePoint", func() {
	It("divides out the projective factor", func() {
		group := curve.Curve25519()
		masked, err := randomizePoint(group, group.G)
		Expect(err).Should(BeNil())

		normalized, err := NormalizePoint(group, masked)
		Expect(err).Should(BeNil())
		Expect(normalized.X.Cmp(group.G.X)).Should(BeZero())
		Expect(normalized.Z.Cmp(big.NewInt(1))).Should(BeZero())
	})
})
