// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/staking/program"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
)

func TestInstantiate(t *testing.T) {
	tt := newTester(t)
	cfg := tt.config()

	assert.Equal(t, ownerAddr, cfg.Owner, "owner defaults to the caller")
	assert.Equal(t, denom, cfg.Denom)
	assert.True(t, cfg.CanStake)
	assert.Equal(t, uint64(0), cfg.TotalStaked)
	assert.Equal(t, tt.now, cfg.LastDistribute)

	_, err := tt.staking.Instantiate(tt.env(ownerAddr), &InstantiateParams{Denom: denom, RewardWallet: walletAddr})
	assert.ErrorIs(t, err, ErrValidation, "instantiate runs once")
}

func TestInstantiate_Validation(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	s := New(contractAddr, state.NewStater(db, 0).NewState())
	tt := &tester{t: t, staking: s}

	_, err = s.Instantiate(tt.env(ownerAddr), &InstantiateParams{Denom: " ", RewardWallet: walletAddr})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Instantiate(tt.env(ownerAddr), &InstantiateParams{Denom: denom})
	assert.ErrorIs(t, err, ErrValidation, "zero reward wallet")

	explicit := thor.BytesToAddress([]byte("explicit"))
	resp, err := s.Instantiate(tt.env(ownerAddr), &InstantiateParams{Owner: &explicit, Denom: denom, RewardWallet: walletAddr})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, EventInstantiate, resp.Events[0].Type)

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, explicit, cfg.Owner)
}

func TestNotInstantiated(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	s := New(contractAddr, state.NewStater(db, 0).NewState())
	tt := &tester{t: t, staking: s}

	calls := map[string]func() (*Response, error){
		"ReceiveDeposit": func() (*Response, error) { return s.ReceiveDeposit(tt.env(nftAddr), "1", alice.String()) },
		"Unstake":        func() (*Response, error) { return s.Unstake(tt.env(alice), "1") },
		"Withdraw":       func() (*Response, error) { return s.Withdraw(tt.env(alice), "1") },
		"GetReward":      func() (*Response, error) { return s.GetReward(tt.env(alice), []string{"1"}) },
		"DistributeReward": func() (*Response, error) {
			return s.DistributeReward(tt.env(walletAddr), uint256.NewInt(1))
		},
		"SetStakeEnabled": func() (*Response, error) { return s.SetStakeEnabled(tt.env(ownerAddr), false) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			assert.ErrorIs(t, err, program.ErrNotInstantiated)
			assert.Equal(t, KindStorageFault, Kind(err))
			assert.True(t, IsStorageFault(err))
		})
	}
}

func TestQueries(t *testing.T) {
	tt := newTester(t)
	tt.stake("3", alice)
	tt.stake("1", bob)
	tt.stake("2", alice)

	ids, err := tt.staking.TokenIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	tokens, err := tt.staking.Tokens()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, bob, tokens[0].Owner)

	mine, err := tt.staking.TokensOf(alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "2", mine[0].TokenID)
	assert.Equal(t, "3", mine[1].TokenID)

	none, err := tt.staking.TokensOf(ownerAddr)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, found, err := tt.staking.Token("404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueries_Empty(t *testing.T) {
	tt := newTester(t)

	ids, err := tt.staking.TokenIDs()
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	tokens, err := tt.staking.Tokens()
	require.NoError(t, err)
	assert.NotNil(t, tokens)
}

func TestStorageFault(t *testing.T) {
	tt := newTester(t)
	tt.stake("1", alice)

	// corrupt the record of token 1
	tt.state.SetRawStorage(contractAddr, append(thor.Blake2b([]byte("tokens")).Bytes(), '1'), rlp.RawValue{0xFF})

	_, err := tt.staking.Unstake(tt.env(alice), "1")
	require.Error(t, err)
	assert.Equal(t, KindStorageFault, Kind(err))

	_, err = tt.staking.DistributeReward(tt.env(walletAddr), nil)
	assert.Equal(t, KindStorageFault, Kind(err))

	_, err = tt.staking.TokenIDs()
	assert.True(t, IsStorageFault(err))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, KindNotStaked, Kind(ErrNotStaked))
	assert.Equal(t, KindValidationFault, Kind(ErrOverflow))
	assert.False(t, IsStorageFault(nil))
	assert.False(t, IsStorageFault(ErrUnauthorized))
}
