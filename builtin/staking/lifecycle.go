// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/staking/ledger"
	"github.com/vechain/nftstaker/xenv"
)

// ReceiveDeposit stakes tokenID on behalf of depositor. Only the registered collectible
// contract may call it, as the hook of a collectible transfer to the program.
func (s *Staking) ReceiveDeposit(env *xenv.Environment, tokenID, depositor string) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.CanStake {
		return nil, ErrCannotStake
	}
	if !isCollectibleContract(cfg, env.Caller()) {
		return nil, ErrWrongCollectibleContract
	}
	if err := validateTokenID(tokenID); err != nil {
		return nil, err
	}
	owner, err := parseAddress("depositor", depositor)
	if err != nil {
		return nil, err
	}

	_, found, err := s.ledger.Get(tokenID)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, errors.WithMessagef(ErrAlreadyStaked, "token %s", tokenID)
	}

	tok := ledger.NewToken(tokenID, owner, env.Now())
	if err := s.ledger.Add(tok); err != nil {
		return nil, err
	}
	cfg.IncTotalStaked()
	if err := s.program.Set(cfg); err != nil {
		return nil, err
	}
	logger.Debug("token staked", "token", tokenID, "owner", owner, "total", cfg.TotalStaked)

	return newResponse().addEvent(EventStake, tokenID,
		"owner", owner.String(),
		"stake_time", strconv.FormatUint(tok.StakeTime, 10),
	), nil
}

// Unstake starts the waiting period of a staked token.
// Calling it again while unstaking restarts the wait from now.
func (s *Staking) Unstake(env *xenv.Environment, tokenID string) (*Response, error) {
	if _, err := s.program.Get(); err != nil {
		return nil, err
	}
	tok, err := s.ownedToken(env, tokenID)
	if err != nil {
		return nil, err
	}

	tok.Status = ledger.StatusUnstaking
	tok.UnstakeTime = env.Now()
	if err := s.ledger.Update(tok); err != nil {
		return nil, err
	}
	logger.Debug("token unstaking", "token", tokenID, "unstakeTime", tok.UnstakeTime)

	return newResponse().addEvent(EventUnstake, tokenID,
		"owner", tok.Owner.String(),
		"unstake_time", strconv.FormatUint(tok.UnstakeTime, 10),
	), nil
}

// Withdraw removes a token whose waiting period is over and returns it, along with
// its pending rewards, to the owner.
func (s *Staking) Withdraw(env *xenv.Environment, tokenID string) (*Response, error) {
	cfg, err := s.program.Get()
	if err != nil {
		return nil, err
	}
	tok, err := s.ownedToken(env, tokenID)
	if err != nil {
		return nil, err
	}
	if tok.Status != ledger.StatusUnstaking {
		return nil, errors.WithMessagef(ErrStatus, "token %s is %s", tokenID, tok.Status)
	}
	if elapsed := tok.Elapsed(env.Now()); elapsed < cfg.StakingPeriod {
		return nil, errors.WithMessagef(ErrTimeRemaining, "token %s: %d seconds left", tokenID, cfg.StakingPeriod-elapsed)
	}

	s.ledger.Remove(tokenID)
	if err := cfg.DecTotalStaked(); err != nil {
		return nil, err
	}
	if err := s.program.Set(cfg); err != nil {
		return nil, err
	}
	logger.Debug("token withdrawn", "token", tokenID, "owner", tok.Owner, "total", cfg.TotalStaked)

	resp := newResponse().addInstruction(collectibleTransfer(cfg.CollectibleContract, tok.Owner, tokenID))
	if !tok.RewardFungible.IsZero() {
		resp.addInstruction(fungibleTransfer(cfg.FungibleContract, tok.Owner, tok.RewardFungible))
	}
	if !tok.RewardNative.IsZero() {
		resp.addInstruction(nativeSend(tok.Owner, cfg.Denom, tok.RewardNative))
	}
	return resp.addEvent(EventWithdraw, tokenID,
		"owner", tok.Owner.String(),
		"reward_fungible", tok.RewardFungible.Dec(),
		"reward_native", tok.RewardNative.Dec(),
	), nil
}

// ownedToken loads the record of tokenID and checks the caller owns it.
func (s *Staking) ownedToken(env *xenv.Environment, tokenID string) (*Token, error) {
	tok, found, err := s.ledger.Get(tokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.WithMessagef(ErrNotStaked, "token %s", tokenID)
	}
	if !isRecordOwner(tok, env.Caller()) {
		return nil, errors.WithMessagef(ErrUnauthorized, "token %s", tokenID)
	}
	return tok, nil
}
