// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/kv"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/thor"
)

type Config struct {
	Store     kv.Store
	Contract  thor.Address
	CacheSize int // entries of the committed storage read cache, 0 disables it

	// Optional.
	Clock    clockwork.Clock
	LogDB    *logdb.LogDB
	OnCommit func(out *Output) // called under the call lock after a call is written
}

func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("store is required")
	}
	if c.Contract.IsZero() {
		return errors.New("contract address is required")
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must not be negative")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}
