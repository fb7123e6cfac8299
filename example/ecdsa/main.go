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

package ecdsa

import (
	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/BHouwens/cryptofun/crypto/ecdsa"
	"github.com/BHouwens/cryptofun/crypto/hash"
	"github.com/BHouwens/cryptofun/example/utils"
)

var Cmd = &cobra.Command{
	Use:   "ecdsa",
	Short: "Sign a hashed message and verify the signature",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ReadConfig()
		if err != nil {
			return err
		}
		group, err := utils.GroupByName(cfg.Curve)
		if err != nil {
			return err
		}

		signer, err := ecdsa.New(group)
		if err != nil {
			log.Error("Failed to set up signer", "err", err)
			return err
		}

		digest, err := hash.Sum([]byte(cfg.Message), hash.Sha3_256)
		if err != nil {
			return err
		}

		signature, err := signer.Sign(digest)
		if err != nil {
			log.Error("Failed to sign", "err", err)
			return err
		}
		if err := signer.Verify(digest, signature); err != nil {
			log.Error("Failed to verify", "err", err)
			return err
		}

		log.Info("Signature verified", "curve", group.Name, "r", signature.R, "s", signature.S)
		return nil
	},
}
