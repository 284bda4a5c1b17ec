// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/xenv"
)

// GetReward pays out and resets the pending rewards of the given tokens.
// Every token must be staked and owned by the caller, otherwise nothing is paid.
func (s *Staking) GetReward(env *xenv.Environment, tokenIDs []string) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	for _, id := range tokenIDs {
		if _, err := s.ownedToken(env, id); err != nil {
			return nil, err
		}
	}

	resp := newResponse()
	for _, id := range tokenIDs {
		// reload, so a repeated id sees the reset of its first occurrence
		tok, err := s.ownedToken(env, id)
		if err != nil {
			return nil, err
		}
		if !tok.HasRewards() {
			continue
		}
		if !tok.RewardFungible.IsZero() {
			resp.addInstruction(fungibleTransfer(cfg.FungibleContract, tok.Owner, tok.RewardFungible))
		}
		if !tok.RewardNative.IsZero() {
			resp.addInstruction(nativeSend(tok.Owner, cfg.Denom, tok.RewardNative))
		}
		resp.addEvent(EventClaim, id,
			"owner", tok.Owner.String(),
			"reward_fungible", tok.RewardFungible.Dec(),
			"reward_native", tok.RewardNative.Dec(),
		)

		tok.RewardFungible = new(uint256.Int)
		tok.RewardNative = new(uint256.Int)
		if err := s.ledger.Update(tok); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// Eligible counts the tokens that take part in a distribution at now: staked tokens and
// unstaking tokens still inside their waiting period.
func (s *Staking) Eligible(now uint64) (uint64, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return 0, err
	}
	_, eligible, err := s.eligible(cfg, now)
	return eligible, err
}

// eligible returns the live record count and the eligible count.
func (s *Staking) eligible(cfg *Config, now uint64) (records, eligible uint64, err error) {
	var expired uint64
	err = s.ledger.Iterate(func(t *Token) error {
		records++
		if t.Expired(now, cfg.StakingPeriod) {
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if expired > cfg.TotalStaked {
		return 0, 0, errors.Errorf("ledger inconsistent: %d expired records, %d staked", expired, cfg.TotalStaked)
	}
	return records, cfg.TotalStaked - expired, nil
}

// DistributeReward splits the attached native funds and the declared fungible balance equally
// over the eligible tokens. The remainder of each division is not credited to anyone.
func (s *Staking) DistributeReward(env *xenv.Environment, tokenBalance *uint256.Int) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	if !isRewardWallet(cfg, env.Caller()) {
		return nil, ErrUnauthorized
	}
	now := env.Now()
	var elapsed uint64
	if now > cfg.LastDistribute {
		elapsed = now - cfg.LastDistribute
	}
	if elapsed < cfg.DistributePeriod {
		return nil, errors.WithMessagef(ErrCannotDistribute, "%d seconds left", cfg.DistributePeriod-elapsed)
	}
	if tokenBalance == nil {
		tokenBalance = new(uint256.Int)
	}
	native, ok := env.FundsOf(cfg.Denom)
	if !ok {
		return nil, errors.WithMessage(ErrOverflow, "attached funds")
	}

	records, eligible, err := s.eligible(cfg, now)
	if err != nil {
		return nil, err
	}
	if records == 0 {
		return nil, errors.WithMessage(ErrNotStaked, "no token staked")
	}
	if eligible == 0 {
		return nil, errors.WithMessage(ErrNotStaked, "no eligible token")
	}

	divisor := uint256.NewInt(eligible)
	fungibleShare := new(uint256.Int).Div(tokenBalance, divisor)
	nativeShare := new(uint256.Int).Div(native, divisor)

	tokens, err := s.ledger.All()
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		if tok.Expired(now, cfg.StakingPeriod) {
			continue
		}
		if _, overflow := tok.RewardFungible.AddOverflow(tok.RewardFungible, fungibleShare); overflow {
			return nil, errors.WithMessagef(ErrOverflow, "token %s fungible reward", tok.TokenID)
		}
		if _, overflow := tok.RewardNative.AddOverflow(tok.RewardNative, nativeShare); overflow {
			return nil, errors.WithMessagef(ErrOverflow, "token %s native reward", tok.TokenID)
		}
		if err := s.ledger.Update(tok); err != nil {
			return nil, err
		}
	}

	cfg.LastDistribute = now
	if err := s.program.Set(cfg); err != nil {
		return nil, err
	}
	logger.Debug("rewards distributed", "eligible", eligible, "fungibleShare", fungibleShare, "nativeShare", nativeShare)

	resp := newResponse()
	if !tokenBalance.IsZero() {
		resp.addInstruction(fungibleTransferFrom(cfg.FungibleContract, env.Caller(), env.Contract(), tokenBalance))
	}
	return resp.addEvent(EventDistribute, "",
		"eligible", strconv.FormatUint(eligible, 10),
		"fungible_share", fungibleShare.Dec(),
		"native_share", nativeShare.Dec(),
		"fungible_total", tokenBalance.Dec(),
		"native_total", native.Dec(),
	), nil
}
