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

package ecdh

import (
	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/BHouwens/cryptofun/crypto/ecdh"
	"github.com/BHouwens/cryptofun/example/utils"
)

var Cmd = &cobra.Command{
	Use:   "ecdh",
	Short: "Two-party elliptic-curve Diffie-Hellman",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ReadConfig()
		if err != nil {
			return err
		}
		// Each party gets its own group instance so the comb table
		// caches do not race.
		groupA, err := utils.GroupByName(cfg.Curve)
		if err != nil {
			return err
		}
		groupB, err := utils.GroupByName(cfg.Curve)
		if err != nil {
			return err
		}

		alice, err := ecdh.New(groupA)
		if err != nil {
			log.Error("Failed to set up first party", "err", err)
			return err
		}
		bob, err := ecdh.New(groupB)
		if err != nil {
			log.Error("Failed to set up second party", "err", err)
			return err
		}

		alice.PeerQ = bob.Q
		bob.PeerQ = alice.Q

		fromAlice, err := alice.GenerateSharedKey()
		if err != nil {
			return err
		}
		fromBob, err := bob.GenerateSharedKey()
		if err != nil {
			return err
		}

		log.Info("Derived shared coordinates", "curve", groupA.Name, "match", fromAlice.Cmp(fromBob) == 0)
		return nil
	},
}
