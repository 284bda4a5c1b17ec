// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/solidity"
	"github.com/vechain/nftstaker/builtin/staking/ledger"
	"github.com/vechain/nftstaker/builtin/staking/program"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
	"github.com/vechain/nftstaker/xenv"
)

var logger = log.New("pkg", "staking")

type (
	Config = program.Config
	Token  = ledger.Token
	Status = ledger.Status
)

const (
	StatusStaked    = ledger.StatusStaked
	StatusUnstaking = ledger.StatusUnstaking
)

// Staking implements the NFT staking program.
type Staking struct {
	program *program.Service
	ledger  *ledger.Service
}

// New create a new instance bound to the program address and the state of the running call.
func New(addr thor.Address, state *state.State) *Staking {
	sctx := solidity.NewContext(addr, state)
	return &Staking{
		program: program.New(sctx),
		ledger:  ledger.New(sctx),
	}
}

// InstantiateParams are the initial program parameters.
type InstantiateParams struct {
	Owner               *thor.Address
	Denom               string
	StakingPeriod       uint64
	DistributePeriod    uint64
	RewardWallet        thor.Address
	CollectibleContract thor.Address
	FungibleContract    thor.Address
}

// Instantiate creates the config singleton. It can only run once.
func (s *Staking) Instantiate(env *xenv.Environment, params *InstantiateParams) (*Response, error) {
	exists, err := s.program.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.WithMessage(ErrValidation, "already instantiated")
	}
	if strings.TrimSpace(params.Denom) == "" {
		return nil, errors.WithMessage(ErrValidation, "empty denom")
	}

	owner := env.Caller()
	if params.Owner != nil {
		owner = *params.Owner
	}
	if err := validateAddress("owner", owner); err != nil {
		return nil, err
	}
	if err := validateAddress("reward wallet", params.RewardWallet); err != nil {
		return nil, err
	}

	cfg := &Config{
		Owner:               owner,
		Denom:               params.Denom,
		StakingPeriod:       params.StakingPeriod,
		DistributePeriod:    params.DistributePeriod,
		RewardWallet:        params.RewardWallet,
		CollectibleContract: params.CollectibleContract,
		FungibleContract:    params.FungibleContract,
		CanStake:            true,
		LastDistribute:      env.Now(),
	}
	if err := s.program.Set(cfg); err != nil {
		return nil, err
	}
	logger.Debug("instantiated", "owner", cfg.Owner, "denom", cfg.Denom, "stakingPeriod", cfg.StakingPeriod)

	return newResponse().addEvent(EventInstantiate, "",
		"owner", cfg.Owner.String(),
		"denom", cfg.Denom,
		"staking_period", strconv.FormatUint(cfg.StakingPeriod, 10),
		"distribute_period", strconv.FormatUint(cfg.DistributePeriod, 10),
	), nil
}

// parseAddress validates an address given as text.
func parseAddress(name, text string) (thor.Address, error) {
	addr, err := thor.ParseAddress(strings.TrimSpace(text))
	if err != nil {
		return thor.Address{}, errors.WithMessagef(ErrValidation, "%s address %q: %v", name, text, err)
	}
	if err := validateAddress(name, *addr); err != nil {
		return thor.Address{}, err
	}
	return *addr, nil
}

func validateAddress(name string, addr thor.Address) error {
	if addr.IsZero() {
		return errors.WithMessagef(ErrValidation, "zero %s address", name)
	}
	return nil
}

func validateTokenID(tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return errors.WithMessage(ErrValidation, "empty token id")
	}
	return nil
}
