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
package rsa

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/BHouwens/cryptofun/crypto/hash"
	"github.com/BHouwens/cryptofun/crypto/utils"
)

func TestRSA(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RSA Suite")
}

var e65537 = big.NewInt(65537)

var _ = Describe("GenerateKeypair", func() {
	DescribeTable("passes the sanity check", func(useCRT bool) {
		engine, err := New(hash.Blake2s, useCRT).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())
		Expect(engine.CheckKeypair()).Should(BeNil())
		Expect(engine.N.BitLen()).Should(Equal(256))
		Expect(engine.SizeN).Should(Equal(32))
	},
		Entry("with CRT", true),
		Entry("without CRT", false),
	)

	It("rejects a bit length below 128", func() {
		engine, err := New(hash.Blake2s, true).GenerateKeypair(64, e65537)
		Expect(engine).Should(BeNil())
		Expect(err).Should(Equal(ErrInvalidParameter))
	})

	It("rejects an exponent below 3", func() {
		engine, err := New(hash.Blake2s, true).GenerateKeypair(256, big.NewInt(2))
		Expect(engine).Should(BeNil())
		Expect(err).Should(Equal(ErrInvalidParameter))
	})
})

var _ = Describe("Round trips", func() {
	DescribeTable("recover 12345 through encrypt then decrypt", func(useCRT bool, first KeyMode, second KeyMode) {
		engine, err := New(hash.Blake2b, useCRT).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		message := []byte{0x39, 0x30}
		ciphertext, err := engine.Encrypt(message, first)
		Expect(err).Should(BeNil())
		Expect(len(ciphertext)).Should(Equal(engine.SizeN))

		plaintext, err := engine.Decrypt(ciphertext, second)
		Expect(err).Should(BeNil())
		Expect(utils.FromBytesLE(plaintext).Int64()).Should(Equal(int64(12345)))
	},
		Entry("public then private, with CRT", true, Public, Private),
		Entry("public then private, without CRT", false, Public, Private),
		Entry("private then public, with CRT", true, Private, Public),
		Entry("private then public, without CRT", false, Private, Public),
	)

	It("survives multi-chunk messages", func() {
		engine, err := New(hash.Blake2b, true).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		message := []byte("a multi chunk message that spans more than thirty bytes of input")
		ciphertext, err := engine.Encrypt(message, Public)
		Expect(err).Should(BeNil())

		plaintext, err := engine.Decrypt(ciphertext, Private)
		Expect(err).Should(BeNil())
		Expect(plaintext).Should(Equal(message))
	})

	It("keeps decrypting correctly while the blinding state evolves", func() {
		engine, err := New(hash.Blake2b, true).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		message := []byte{0x01, 0x02, 0x03}
		ciphertext, err := engine.Encrypt(message, Public)
		Expect(err).Should(BeNil())

		for i := 0; i < 4; i++ {
			plaintext, err := engine.Decrypt(ciphertext, Private)
			Expect(err).Should(BeNil())
			Expect(plaintext).Should(Equal(message))
		}
	})
})

var _ = Describe("Blinding", func() {
	It("uses distinct pairs on consecutive private operations", func() {
		engine, err := New(hash.Blake2b, true).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		message := []byte{0x2a}
		ciphertext, err := engine.Encrypt(message, Public)
		Expect(err).Should(BeNil())

		_, err = engine.Decrypt(ciphertext, Private)
		Expect(err).Should(BeNil())
		vi1, vf1 := engine.BlindingPair()
		Expect(vi1).ShouldNot(BeNil())

		_, err = engine.Decrypt(ciphertext, Private)
		Expect(err).Should(BeNil())
		vi2, vf2 := engine.BlindingPair()

		Expect(vi1.Cmp(vi2)).ShouldNot(BeZero())
		Expect(vf1.Cmp(vf2)).ShouldNot(BeZero())
	})
})

var _ = Describe("Peer keys", func() {
	It("encrypts against an exported public key", func() {
		full, err := New(hash.Blake2b, true).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		n, e := full.ExportPublicValues()
		peer, err := New(hash.Blake2b, false).GenerateKeypairFromPeer(e, n)
		Expect(err).Should(BeNil())

		message := []byte{0x05, 0x06, 0x07}
		ciphertext, err := peer.Encrypt(message, Public)
		Expect(err).Should(BeNil())

		plaintext, err := full.Decrypt(ciphertext, Private)
		Expect(err).Should(BeNil())
		Expect(plaintext).Should(Equal(message))
	})

	It("refuses private operations on a public-only key", func() {
		full, err := New(hash.Blake2b, true).GenerateKeypair(256, e65537)
		Expect(err).Should(BeNil())

		n, e := full.ExportPublicValues()
		peer, err := New(hash.Blake2b, true).GenerateKeypairFromPeer(e, n)
		Expect(err).Should(BeNil())

		_, err = peer.Encrypt([]byte{0x01}, Private)
		Expect(err).Should(Equal(ErrKeypairInvalid))
	})
})
