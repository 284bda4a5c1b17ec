// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"strconv"

	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/xenv"
)

// updateConfig runs an owner gated config change. The authorization check happens before
// update sees any input.
func (s *Staking) updateConfig(env *xenv.Environment, field string, update func(cfg *Config) (string, error)) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	if !isOwner(cfg, env.Caller()) {
		return nil, ErrUnauthorized
	}
	value, err := update(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.program.Set(cfg); err != nil {
		return nil, err
	}
	logger.Debug("config updated", "field", field, "value", value)
	return newResponse().addEvent(EventUpdateConfig, "", "field", field, "value", value), nil
}

// SetRewardWallet changes the wallet allowed to distribute rewards.
func (s *Staking) SetRewardWallet(env *xenv.Environment, address string) (*Response, error) {
	return s.updateConfig(env, "reward_wallet", func(cfg *Config) (string, error) {
		addr, err := parseAddress("reward wallet", address)
		if err != nil {
			return "", err
		}
		cfg.RewardWallet = addr
		return addr.String(), nil
	})
}

// SetCollectibleAddress changes the collectible contract whose deposits are accepted.
func (s *Staking) SetCollectibleAddress(env *xenv.Environment, address string) (*Response, error) {
	return s.updateConfig(env, "nft_address", func(cfg *Config) (string, error) {
		addr, err := parseAddress("collectible contract", address)
		if err != nil {
			return "", err
		}
		cfg.CollectibleContract = addr
		return addr.String(), nil
	})
}

// SetFungibleAddress changes the fungible reward token contract.
func (s *Staking) SetFungibleAddress(env *xenv.Environment, address string) (*Response, error) {
	return s.updateConfig(env, "token_address", func(cfg *Config) (string, error) {
		addr, err := parseAddress("fungible contract", address)
		if err != nil {
			return "", err
		}
		cfg.FungibleContract = addr
		return addr.String(), nil
	})
}

// SetOwner hands the program over to a new owner.
func (s *Staking) SetOwner(env *xenv.Environment, address string) (*Response, error) {
	return s.updateConfig(env, "owner", func(cfg *Config) (string, error) {
		addr, err := parseAddress("owner", address)
		if err != nil {
			return "", err
		}
		cfg.Owner = addr
		return addr.String(), nil
	})
}

func (s *Staking) SetStakingPeriod(env *xenv.Environment, seconds uint64) (*Response, error) {
	return s.updateConfig(env, "staking_period", func(cfg *Config) (string, error) {
		cfg.StakingPeriod = seconds
		return strconv.FormatUint(seconds, 10), nil
	})
}

func (s *Staking) SetDistributePeriod(env *xenv.Environment, seconds uint64) (*Response, error) {
	return s.updateConfig(env, "distribute_period", func(cfg *Config) (string, error) {
		cfg.DistributePeriod = seconds
		return strconv.FormatUint(seconds, 10), nil
	})
}

// SetStakeEnabled toggles whether new deposits are accepted.
func (s *Staking) SetStakeEnabled(env *xenv.Environment, enabled bool) (*Response, error) {
	return s.updateConfig(env, "can_stake", func(cfg *Config) (string, error) {
		cfg.CanStake = enabled
		return strconv.FormatBool(enabled), nil
	})
}

// WithdrawAllMoney sends the given amounts held by the program to the owner.
// The ledger is not consulted, so pending rewards may end up unbacked.
func (s *Staking) WithdrawAllMoney(env *xenv.Environment, nativeAmount, fungibleAmount *uint256.Int) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	if !isOwner(cfg, env.Caller()) {
		return nil, ErrUnauthorized
	}

	resp := newResponse()
	if fungibleAmount != nil && !fungibleAmount.IsZero() {
		resp.addInstruction(fungibleTransfer(cfg.FungibleContract, cfg.Owner, fungibleAmount))
	}
	if nativeAmount != nil && !nativeAmount.IsZero() {
		resp.addInstruction(nativeSend(cfg.Owner, cfg.Denom, nativeAmount))
	}
	return resp.addEvent(EventWithdrawAllMoney, "",
		"fungible_amount", amountString(fungibleAmount),
		"native_amount", amountString(nativeAmount),
	), nil
}

func amountString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
