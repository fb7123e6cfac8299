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

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/BHouwens/cryptofun/crypto/hash"
	"github.com/BHouwens/cryptofun/crypto/rsa"
	"github.com/BHouwens/cryptofun/example/utils"
)

var Cmd = &cobra.Command{
	Use:   "rsa",
	Short: "RSA keypair generation and a public/private round trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ReadConfig()
		if err != nil {
			return err
		}

		engine, err := rsa.New(hash.Blake2b, true).GenerateKeypair(cfg.Bits, big.NewInt(65537))
		if err != nil {
			log.Error("Failed to generate keypair", "err", err)
			return err
		}
		if err := engine.CheckKeypair(); err != nil {
			log.Error("Keypair failed sanity check", "err", err)
			return err
		}
		log.Info("Generated RSA keypair", "bits", cfg.Bits)

		ciphertext, err := engine.Encrypt([]byte(cfg.Message), rsa.Public)
		if err != nil {
			return err
		}
		plaintext, err := engine.Decrypt(ciphertext, rsa.Private)
		if err != nil {
			return err
		}

		log.Info("Round trip done", "message", cfg.Message, "recovered", string(plaintext), "ciphertextBytes", len(ciphertext))
		return nil
	},
}
