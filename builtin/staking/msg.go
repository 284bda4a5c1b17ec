// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/xenv"
)

// ReceiveMsg is the hook the collectible contract sends when a token is transferred to the program.
type ReceiveMsg struct {
	Sender  string `json:"sender"`
	TokenID string `json:"token_id"`
	Msg     []byte `json:"msg,omitempty"`
}

type TokenMsg struct {
	TokenID string `json:"token_id"`
}

type GetRewardMsg struct {
	TokenIDs []string `json:"token_ids"`
}

type DistributeRewardMsg struct {
	TokenBalance *uint256.Int `json:"token_balance"`
}

type AddressMsg struct {
	Address string `json:"address"`
}

type PeriodMsg struct {
	Time uint64 `json:"time"`
}

type SetStakeMsg struct {
	Flag bool `json:"flag"`
}

type WithdrawAllMoneyMsg struct {
	NativeAmount   *uint256.Int `json:"native_amount"`
	FungibleAmount *uint256.Int `json:"fungible_amount"`
}

// ExecuteMsg is the envelope of a mutating call. Exactly one member must be set.
type ExecuteMsg struct {
	ReceiveNft          *ReceiveMsg          `json:"receive_nft,omitempty"`
	UnstakeNft          *TokenMsg            `json:"unstake_nft,omitempty"`
	WithdrawNft         *TokenMsg            `json:"withdraw_nft,omitempty"`
	GetReward           *GetRewardMsg        `json:"get_reward,omitempty"`
	DistributeReward    *DistributeRewardMsg `json:"distribute_reward,omitempty"`
	SetRewardWallet     *AddressMsg          `json:"set_reward_wallet,omitempty"`
	SetNftAddress       *AddressMsg          `json:"set_nft_address,omitempty"`
	SetTokenAddress     *AddressMsg          `json:"set_token_address,omitempty"`
	SetOwner            *AddressMsg          `json:"set_owner,omitempty"`
	SetStakingPeriod    *PeriodMsg           `json:"set_staking_period,omitempty"`
	SetDistributePeriod *PeriodMsg           `json:"set_distribute_period,omitempty"`
	SetStake            *SetStakeMsg         `json:"set_stake,omitempty"`
	WithdrawAllMoney    *WithdrawAllMoneyMsg `json:"withdraw_all_money,omitempty"`
}

// Method returns the name of the set member.
func (m *ExecuteMsg) Method() (string, error) {
	set := []struct {
		name  string
		isSet bool
	}{
		{"receive_nft", m.ReceiveNft != nil},
		{"unstake_nft", m.UnstakeNft != nil},
		{"withdraw_nft", m.WithdrawNft != nil},
		{"get_reward", m.GetReward != nil},
		{"distribute_reward", m.DistributeReward != nil},
		{"set_reward_wallet", m.SetRewardWallet != nil},
		{"set_nft_address", m.SetNftAddress != nil},
		{"set_token_address", m.SetTokenAddress != nil},
		{"set_owner", m.SetOwner != nil},
		{"set_staking_period", m.SetStakingPeriod != nil},
		{"set_distribute_period", m.SetDistributePeriod != nil},
		{"set_stake", m.SetStake != nil},
		{"withdraw_all_money", m.WithdrawAllMoney != nil},
	}
	method := ""
	for _, s := range set {
		if !s.isSet {
			continue
		}
		if method != "" {
			return "", errors.WithMessagef(ErrValidation, "message sets both %s and %s", method, s.name)
		}
		method = s.name
	}
	if method == "" {
		return "", errors.WithMessage(ErrValidation, "empty message")
	}
	return method, nil
}

// Execute dispatches msg to the matching operation.
func (s *Staking) Execute(env *xenv.Environment, msg *ExecuteMsg) (*Response, error) {
	if _, err := msg.Method(); err != nil {
		return nil, err
	}
	switch {
	case msg.ReceiveNft != nil:
		return s.ReceiveDeposit(env, msg.ReceiveNft.TokenID, msg.ReceiveNft.Sender)
	case msg.UnstakeNft != nil:
		return s.Unstake(env, msg.UnstakeNft.TokenID)
	case msg.WithdrawNft != nil:
		return s.Withdraw(env, msg.WithdrawNft.TokenID)
	case msg.GetReward != nil:
		return s.GetReward(env, msg.GetReward.TokenIDs)
	case msg.DistributeReward != nil:
		return s.DistributeReward(env, msg.DistributeReward.TokenBalance)
	case msg.SetRewardWallet != nil:
		return s.SetRewardWallet(env, msg.SetRewardWallet.Address)
	case msg.SetNftAddress != nil:
		return s.SetCollectibleAddress(env, msg.SetNftAddress.Address)
	case msg.SetTokenAddress != nil:
		return s.SetFungibleAddress(env, msg.SetTokenAddress.Address)
	case msg.SetOwner != nil:
		return s.SetOwner(env, msg.SetOwner.Address)
	case msg.SetStakingPeriod != nil:
		return s.SetStakingPeriod(env, msg.SetStakingPeriod.Time)
	case msg.SetDistributePeriod != nil:
		return s.SetDistributePeriod(env, msg.SetDistributePeriod.Time)
	case msg.SetStake != nil:
		return s.SetStakeEnabled(env, msg.SetStake.Flag)
	default:
		return s.WithdrawAllMoney(env, msg.WithdrawAllMoney.NativeAmount, msg.WithdrawAllMoney.FungibleAmount)
	}
}
