// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/solidity"
	"github.com/vechain/nftstaker/thor"
)

var slotConfig = thor.Blake2b([]byte("config"))

// ErrNotInstantiated is returned when the config singleton is absent.
var ErrNotInstantiated = errors.New("program not instantiated")

// Service is the config store.
type Service struct {
	config *solidity.Raw[*Config]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		config: solidity.NewRaw[*Config](sctx, slotConfig),
	}
}

// Get loads the config.
func (s *Service) Get() (*Config, error) {
	c, found, err := s.config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if !found {
		return nil, ErrNotInstantiated
	}
	return c, nil
}

// Exists tells whether the config was ever set.
func (s *Service) Exists() (bool, error) {
	_, found, err := s.config.Load()
	if err != nil {
		return false, errors.Wrap(err, "failed to get config")
	}
	return found, nil
}

// Set stores the config.
func (s *Service) Set(c *Config) error {
	if err := s.config.Upsert(c); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	return nil
}
