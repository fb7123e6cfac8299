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

package curve

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// BP256R1 returns the 256-bit Brainpool curve brainpoolP256r1 (RFC 5639).
func BP256R1() *Group {
	return &Group{
		Name:  "BP256R1",
		Shape: ShortWeierstrass,
		P:     mustHex("A9FB57DBA1EEA9BC3E660A909D838D726E3BF623D52620282013481D1F6E5377"),
		A:     mustHex("7D5A0975FC2C3057EEF67530417AFFE7FB8055C126DC5C6CE94A4B44F330B5D9"),
		B:     mustHex("26DC5C6CE94A4B44F330B5D9BBD77CBF958416295CF7E1CE6BCCDC18FF8C07B6"),
		G: NewPoint(
			mustHex("8BD2AEB9CB7E57CB2C4B482FFC81B7AFB9DE27E1E3BD23C23A4453BD9ACE3262"),
			mustHex("547EF835C3DAC4FD97F8461A14611DC9C27745132DED8E545C1D54C72F046997"),
		),
		N:     mustHex("A9FB57DBA1EEA9BC3E660A909D838D718C397AA3B561A6F7901E0E82974856A7"),
		Nbits: 256,
	}
}

// BP384R1 returns the 384-bit Brainpool curve brainpoolP384r1 (RFC 5639).
func BP384R1() *Group {
	return &Group{
		Name:  "BP384R1",
		Shape: ShortWeierstrass,
		P:     mustHex("8CB91E82A3386D280F5D6F7E50E641DF152F7109ED5456B412B1DA197FB71123ACD3A729901D1A71874700133107EC53"),
		A:     mustHex("7BC382C63D8C150C3C72080ACE05AFA0C2BEA28E4FB22787139165EFBA91F90F8AA5814A503AD4EB04A8C7DD22CE2826"),
		B:     mustHex("04A8C7DD22CE28268B39B55416F0447C2FB77DE107DCD2A62E880EA53EEB62D57CB4390295DBC9943AB78696FA504C11"),
		G: NewPoint(
			mustHex("1D1C64F068CF45FFA2A63A81B7C13F6B8847A3E77EF14FE3DB7FCAFE0CBD10E8E826E03436D646AAEF87B2E247D4AF1E"),
			mustHex("8ABE1D7520F9C2A45CB1EB8E95CFD55262B70B29FEEC5864E19C054FF99129280E4646217791811142820341263C5315"),
		),
		N:     mustHex("8CB91E82A3386D280F5D6F7E50E641DF152F7109ED5456B31F166E6CAC0425A7CF3AB6AF6B7FC3103B883202E9046565"),
		Nbits: 384,
	}
}

// P521 returns the 521-bit NIST curve P-521, the largest group in the
// Weierstrass family here. Its a = -3 exercises the special-cased doubling.
func P521() *Group {
	params := elliptic.P521().Params()
	return &Group{
		Name:  "P521",
		Shape: ShortWeierstrass,
		P:     new(big.Int).Set(params.P),
		A:     new(big.Int).Sub(params.P, big.NewInt(3)),
		B:     new(big.Int).Set(params.B),
		G:     NewPoint(params.Gx, params.Gy),
		N:     new(big.Int).Set(params.N),
		Nbits: params.BitSize,
	}
}

// S256 returns the secp256k1 group, with constants taken from btcec. Its
// a = 0 exercises the short doubling path.
func S256() *Group {
	params := btcec.S256().Params()
	return &Group{
		Name:  "S256",
		Shape: ShortWeierstrass,
		P:     new(big.Int).Set(params.P),
		A:     big.NewInt(0),
		B:     new(big.Int).Set(params.B),
		G:     NewPoint(params.Gx, params.Gy),
		N:     new(big.Int).Set(params.N),
		Nbits: params.BitSize,
	}
}

// Curve25519 returns the 255-bit Montgomery curve y^2 = x^3 + 486662x^2 + x
// over 2^255 - 19. Points carry x/z only; B is unused for this shape.
func Curve25519() *Group {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	p.Sub(p, big.NewInt(19))

	return &Group{
		Name:  "Curve25519",
		Shape: Montgomery,
		P:     p,
		A:     big.NewInt(486662),
		B:     big.NewInt(0),
		G:     NewPoint(big.NewInt(9), nil),
		N:     mustHex("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED"),
		Nbits: 255,
	}
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: malformed constant " + s)
	}
	return v
}
