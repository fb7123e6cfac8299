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

import "math/big"

// BytesLE serialises v as a little-endian byte vector of its natural length.
// Zero serialises to an empty slice.
func BytesLE(v *big.Int) []byte {
	bs := v.Bytes()
	for i, j := 0, len(bs)-1; i < j; i, j = i+1, j-1 {
		bs[i], bs[j] = bs[j], bs[i]
	}
	return bs
}

// FromBytesLE interprets bs as a little-endian unsigned integer.
func FromBytesLE(bs []byte) *big.Int {
	be := make([]byte, len(bs))
	for i := range bs {
		be[len(bs)-1-i] = bs[i]
	}
	return new(big.Int).SetBytes(be)
}
