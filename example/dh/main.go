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

import (
	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/BHouwens/cryptofun/crypto/dh"
	"github.com/BHouwens/cryptofun/example/utils"
)

var Cmd = &cobra.Command{
	Use:   "dh",
	Short: "Two-party Diffie-Hellman key agreement",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ReadConfig()
		if err != nil {
			return err
		}

		alice := dh.New()
		if err := alice.Setup(cfg.Bits); err != nil {
			log.Error("Failed to set up first party", "err", err)
			return err
		}

		bob := dh.NewFromPeer(alice.P, alice.G, alice.GX)
		if err := bob.Setup(cfg.Bits); err != nil {
			log.Error("Failed to set up second party", "err", err)
			return err
		}

		fromAlice, err := alice.GenerateSharedKey(bob.GX)
		if err != nil {
			return err
		}
		fromBob, err := bob.GenerateSharedKey(alice.GX)
		if err != nil {
			return err
		}

		log.Info("Derived shared keys", "bits", cfg.Bits, "match", fromAlice.Cmp(fromBob) == 0)
		return nil
	},
}
