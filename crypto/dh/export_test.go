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
package dh

import "math/big"

// BlindingPair exposes the current blinding state to the test suite.
func (d *DiffieHellman) BlindingPair() (*big.Int, *big.Int) {
	if d.vi == nil || d.vf == nil {
		return nil, nil
	}
	return new(big.Int).Set(d.vi), new(big.Int).Set(d.vf)
}
