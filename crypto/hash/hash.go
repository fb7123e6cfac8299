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

// Package hash dispatches on a closed set of digest algorithms. The
// asymmetric engines only store the tag; hashing input messages is the
// caller's responsibility.
package hash

import (
	"errors"

	"github.com/minio/blake2b-simd"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Algorithm selects one of the supported digests.
type Algorithm int

const (
	Blake2b Algorithm = iota
	Blake2s
	Sha3_256
	Sha3_512
	Keccak256
	Keccak512
)

// ErrUnknownAlgorithm is returned if the algorithm tag is not in the
// supported set.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Sum hashes a completely available message with the selected algorithm.
func Sum(message []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case Blake2b:
		sum := blake2b.Sum512(message)
		return sum[:], nil
	case Blake2s:
		sum := blake2s.Sum256(message)
		return sum[:], nil
	case Sha3_256:
		sum := sha3.Sum256(message)
		return sum[:], nil
	case Sha3_512:
		sum := sha3.Sum512(message)
		return sum[:], nil
	case Keccak256:
		h := sha3.NewLegacyKeccak256()
		h.Write(message)
		return h.Sum(nil), nil
	case Keccak512:
		h := sha3.NewLegacyKeccak512()
		h.Write(message)
		return h.Sum(nil), nil
	}
	return nil, ErrUnknownAlgorithm
}
