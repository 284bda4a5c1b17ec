// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
	"github.com/vechain/nftstaker/xenv"
)

const (
	denom         = "ujuno"
	stakingPeriod = 1000
)

var (
	contractAddr = thor.BytesToAddress([]byte("nft-staking"))
	ownerAddr    = thor.BytesToAddress([]byte("owner"))
	walletAddr   = thor.BytesToAddress([]byte("reward-wallet"))
	nftAddr      = thor.BytesToAddress([]byte("collectible"))
	tokenAddr    = thor.BytesToAddress([]byte("fungible"))
	alice        = thor.BytesToAddress([]byte("alice"))
	bob          = thor.BytesToAddress([]byte("bob"))
)

type tester struct {
	t       *testing.T
	staking *Staking
	state   *state.State
	now     uint64
}

// newTester returns an instantiated program at time 1_000_000 with a 1000s staking period
// and no distribute period.
func newTester(t *testing.T) *tester {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	tt := &tester{
		t:       t,
		staking: New(contractAddr, st),
		state:   st,
		now:     1_000_000,
	}
	_, err = tt.staking.Instantiate(tt.env(ownerAddr), &InstantiateParams{
		Denom:               denom,
		StakingPeriod:       stakingPeriod,
		RewardWallet:        walletAddr,
		CollectibleContract: nftAddr,
		FungibleContract:    tokenAddr,
	})
	require.NoError(t, err)
	return tt
}

func (tt *tester) env(caller thor.Address, funds ...xenv.Coin) *xenv.Environment {
	return xenv.New(contractAddr, &xenv.BlockContext{Time: tt.now}, &xenv.CallContext{Caller: caller, Funds: funds})
}

func (tt *tester) advance(seconds uint64) {
	tt.now += seconds
}

func (tt *tester) stake(tokenID string, owner thor.Address) {
	_, err := tt.staking.ReceiveDeposit(tt.env(nftAddr), tokenID, owner.String())
	require.NoError(tt.t, err)
}

func (tt *tester) unstake(tokenID string, owner thor.Address) {
	_, err := tt.staking.Unstake(tt.env(owner), tokenID)
	require.NoError(tt.t, err)
}

func (tt *tester) token(tokenID string) *Token {
	tok, found, err := tt.staking.Token(tokenID)
	require.NoError(tt.t, err)
	require.True(tt.t, found, "token %s not staked", tokenID)
	return tok
}

func (tt *tester) config() *Config {
	cfg, err := tt.staking.Config()
	require.NoError(tt.t, err)
	return cfg
}
