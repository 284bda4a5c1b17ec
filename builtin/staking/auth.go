// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaker/thor"
)

func isOwner(cfg *Config, caller thor.Address) bool {
	return cfg.Owner == caller
}

func isRewardWallet(cfg *Config, caller thor.Address) bool {
	return cfg.RewardWallet == caller
}

func isCollectibleContract(cfg *Config, caller thor.Address) bool {
	return cfg.CollectibleContract == caller
}

func isRecordOwner(t *Token, caller thor.Address) bool {
	return t.Owner == caller
}
