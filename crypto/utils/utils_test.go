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
package utils

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func TestUtils(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Utils Suite")
}

var _ = Describe("Modular inverse", func() {
	DescribeTable("known values", func(a int64, m int64, expected int64) {
		inverse, err := ModularInverse(big.NewInt(a), big.NewInt(m))
		Expect(err).Should(BeNil())
		Expect(inverse.Int64()).Should(Equal(expected))
	},
		Entry("3 mod 11 = 4", int64(3), int64(11), int64(4)),
		Entry("2 mod 5 = 3", int64(2), int64(5), int64(3)),
		Entry("7 mod 26 = 15", int64(7), int64(26), int64(15)),
	)

	It("satisfies a * a^-1 = 1 mod m for random coprime pairs", func() {
		m := big.NewInt(104729)
		for i := 0; i < 50; i++ {
			a, err := RandomPositiveInt(m)
			Expect(err).Should(BeNil())
			if !IsRelativePrime(a, m) {
				continue
			}

			inverse, err := ModularInverse(a, m)
			Expect(err).Should(BeNil())

			product := new(big.Int).Mul(a, inverse)
			Expect(product.Mod(product, m).Cmp(big1)).Should(BeZero())
		}
	})

	It("fails on a non-coprime pair", func() {
		inverse, err := ModularInverse(big.NewInt(4), big.NewInt(8))
		Expect(inverse).Should(BeNil())
		Expect(err).Should(Equal(ErrNotInvertible))
	})

	It("accepts negative inputs and normalises the result", func() {
		inverse, err := ModularInverseInt(big.NewInt(-3), big.NewInt(11))
		Expect(err).Should(BeNil())
		Expect(inverse.Sign() > 0).Should(BeTrue())

		product := new(big.Int).Mul(big.NewInt(-3), inverse)
		Expect(product.Mod(product, big.NewInt(11)).Cmp(big1)).Should(BeZero())
	})
})

var _ = Describe("Little-endian round trip", func() {
	It("round-trips values through BytesLE", func() {
		values := []int64{0, 1, 255, 256, 12345, 1 << 40}
		for _, v := range values {
			value := big.NewInt(v)
			Expect(FromBytesLE(BytesLE(value)).Cmp(value)).Should(BeZero())
		}
	})

	It("orders bytes least significant first", func() {
		Expect(BytesLE(big.NewInt(12345))).Should(Equal([]byte{0x39, 0x30}))
		Expect(FromBytesLE([]byte{0x39, 0x30, 0x00}).Int64()).Should(Equal(int64(12345)))
	})
})

var _ = Describe("InRange", func() {
	It("accepts values inside [floor, ceil)", func() {
		Expect(InRange(big.NewInt(3), big.NewInt(2), big.NewInt(5))).Should(BeNil())
	})

	It("rejects values outside", func() {
		Expect(InRange(big.NewInt(5), big.NewInt(2), big.NewInt(5))).Should(Equal(ErrNotInRange))
		Expect(InRange(big.NewInt(1), big.NewInt(2), big.NewInt(5))).Should(Equal(ErrNotInRange))
	})
})
