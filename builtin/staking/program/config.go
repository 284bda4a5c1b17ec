// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/thor"
)

// Config holds the program wide parameters.
type Config struct {
	Owner               thor.Address `json:"owner"`
	Denom               string       `json:"denom"`
	StakingPeriod       uint64       `json:"stakingPeriod"`
	DistributePeriod    uint64       `json:"distributePeriod"`
	RewardWallet        thor.Address `json:"rewardWallet"`
	CollectibleContract thor.Address `json:"collectibleContract"`
	FungibleContract    thor.Address `json:"fungibleContract"`
	CanStake            bool         `json:"canStake"`
	TotalStaked         uint64       `json:"totalStaked"` // count of live token records
	LastDistribute      uint64       `json:"lastDistribute"`
}

// IncTotalStaked adds one live record to the count.
func (c *Config) IncTotalStaked() {
	c.TotalStaked++
}

// DecTotalStaked removes one live record from the count. It fails instead of wrapping below zero.
func (c *Config) DecTotalStaked() error {
	if c.TotalStaked == 0 {
		return errors.New("total staked underflow")
	}
	c.TotalStaked--
	return nil
}
