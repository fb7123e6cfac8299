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

// Package transform holds the byte chunking helpers shared by the RSA
// message framing.
package transform

// Chunks splits the input into groups of at most size bytes; the final group
// may be shorter.
func Chunks(input []byte, size int) [][]byte {
	chunked := make([][]byte, 0, len(input)/size+1)
	for len(input) > size {
		chunked = append(chunked, input[:size])
		input = input[size:]
	}
	if len(input) > 0 {
		chunked = append(chunked, input)
	}
	return chunked
}

// ExactChunks splits the input into groups of exactly size bytes. Trailing
// bytes beyond the last full group are dropped; callers feed inputs whose
// length is a multiple of size.
func ExactChunks(input []byte, size int) [][]byte {
	chunked := make([][]byte, 0, len(input)/size)
	for len(input) >= size {
		chunked = append(chunked, input[:size])
		input = input[size:]
	}
	return chunked
}
