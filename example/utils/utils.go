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

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/BHouwens/cryptofun/crypto/curve"
	"github.com/BHouwens/cryptofun/example/config"
)

// ErrUnknownCurve is returned if the configured curve name is not registered.
var ErrUnknownCurve = errors.New("unknown curve")

// DefaultConfig is used when no config file is given.
var DefaultConfig = &config.Config{
	Bits:    256,
	Curve:   "BP256R1",
	Message: "hello cryptofun",
}

// ReadConfig loads the yaml config bound to the --config flag, falling back
// to DefaultConfig.
func ReadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		return DefaultConfig, nil
	}
	return config.ReadConfigFile(path)
}

// GroupByName resolves a registry curve name.
func GroupByName(name string) (*curve.Group, error) {
	switch name {
	case "BP256R1":
		return curve.BP256R1(), nil
	case "BP384R1":
		return curve.BP384R1(), nil
	case "P521":
		return curve.P521(), nil
	case "S256":
		return curve.S256(), nil
	case "Curve25519":
		return curve.Curve25519(), nil
	}
	return nil, ErrUnknownCurve
}
