// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/kv"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/runtime"
	"github.com/vechain/nftstaker/thor"
	"github.com/vechain/nftstaker/xenv"
)

var (
	accs   = genesis.DevAccounts()
	owner  = accs[0].Address
	wallet = accs[1].Address
	nft    = accs[2].Address
	alice  = accs[4].Address
	bob    = accs[5].Address
)

type fixture struct {
	exec  *runtime.Executor
	clock *clockwork.FakeClock
	store kv.Store
	logDB *logdb.LogDB
}

func newFixture(t *testing.T, store kv.Store) *fixture {
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	clock := clockwork.NewFakeClockAt(time.Unix(1_000_000, 0))
	exec, err := runtime.New(&runtime.Config{
		Store:     store,
		Contract:  genesis.DevContract,
		CacheSize: 128,
		Clock:     clock,
		LogDB:     logDB,
	})
	require.NoError(t, err)

	_, err = exec.Bootstrap(genesis.NewDevnet())
	require.NoError(t, err)
	return &fixture{exec: exec, clock: clock, store: store, logDB: logDB}
}

func newMemFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newFixture(t, db)
}

func (f *fixture) deposit(t *testing.T, tokenID string, depositor thor.Address) {
	_, err := f.exec.Execute(nft, nil, &staking.ExecuteMsg{
		ReceiveNft: &staking.ReceiveMsg{Sender: depositor.String(), TokenID: tokenID},
	})
	require.NoError(t, err)
}

func snapshot(t *testing.T, store kv.Store) map[string]string {
	it := store.Iterate(kv.Range{})
	defer it.Release()
	out := map[string]string{}
	for it.Next() {
		out[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	return out
}

func TestConfigValidate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = runtime.New(&runtime.Config{Contract: genesis.DevContract})
	assert.Error(t, err)
	_, err = runtime.New(&runtime.Config{Store: db})
	assert.Error(t, err)
	_, err = runtime.New(&runtime.Config{Store: db, Contract: genesis.DevContract, CacheSize: -1})
	assert.Error(t, err)

	cfg := &runtime.Config{Store: db, Contract: genesis.DevContract}
	_, err = runtime.New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Clock, "defaults to the real clock")
}

func TestBootstrap(t *testing.T) {
	f := newMemFixture(t)

	cfg, err := f.exec.Config()
	require.NoError(t, err)
	assert.Equal(t, owner, cfg.Owner)
	assert.Equal(t, wallet, cfg.RewardWallet)
	assert.Equal(t, uint64(1_000_000), cfg.LastDistribute)
	assert.True(t, cfg.CanStake)

	height, err := f.exec.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), height)

	// same genesis again is a no-op
	done, err := f.exec.Bootstrap(genesis.NewDevnet())
	require.NoError(t, err)
	assert.False(t, done)

	other, err := genesis.New(&genesis.Document{
		Contract:      genesis.DevContract.String(),
		Owner:         bob.String(),
		Denom:         "uatom",
		StakingPeriod: 1,
		RewardWallet:  wallet.String(),
		NftAddress:    nft.String(),
		TokenAddress:  accs[3].Address.String(),
	})
	require.NoError(t, err)
	_, err = f.exec.Bootstrap(other)
	assert.ErrorIs(t, err, runtime.ErrGenesisMismatch)

	events, err := f.logDB.FilterEvents(context.Background(), &logdb.EventFilter{Types: []string{staking.EventInstantiate}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, owner, events[0].Caller)
}

func TestExecute_Lifecycle(t *testing.T) {
	f := newMemFixture(t)
	f.deposit(t, "1", alice)
	f.deposit(t, "2", bob)
	f.clock.Advance(10 * time.Second)

	out, err := f.exec.Execute(wallet, []xenv.Coin{{Denom: "ujuno", Amount: uint256.NewInt(40)}}, &staking.ExecuteMsg{
		DistributeReward: &staking.DistributeRewardMsg{TokenBalance: uint256.NewInt(100)},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.CallID)
	assert.Equal(t, uint32(4), out.BlockNumber)
	assert.Equal(t, uint64(1_000_010), out.BlockTime)
	require.Len(t, out.Instructions, 1)
	assert.Equal(t, staking.KindFungibleTransferFrom, out.Instructions[0].Kind)

	tok, found, err := f.exec.Token("1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(50), tok.RewardFungible.Uint64())
	assert.Equal(t, uint64(20), tok.RewardNative.Uint64())

	_, err = f.exec.Execute(alice, nil, &staking.ExecuteMsg{UnstakeNft: &staking.TokenMsg{TokenID: "1"}})
	require.NoError(t, err)

	_, err = f.exec.Execute(alice, nil, &staking.ExecuteMsg{WithdrawNft: &staking.TokenMsg{TokenID: "1"}})
	assert.ErrorIs(t, err, staking.ErrTimeRemaining)

	f.clock.Advance(60 * time.Second)
	assert.Equal(t, uint64(1_000_070), f.exec.CurrentTime())

	eligible, err := f.exec.Eligible()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), eligible)

	out, err = f.exec.Execute(alice, nil, &staking.ExecuteMsg{WithdrawNft: &staking.TokenMsg{TokenID: "1"}})
	require.NoError(t, err)
	require.Len(t, out.Instructions, 3)
	assert.Equal(t, staking.KindCollectibleTransfer, out.Instructions[0].Kind)

	ids, err := f.exec.TokenIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids)

	tokens, err := f.exec.TokensOf(bob)
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	all, err := f.exec.Tokens()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	recorded, err := f.logDB.FilterInstructions(context.Background(), &logdb.InstructionFilter{Recipient: &alice})
	require.NoError(t, err)
	assert.Len(t, recorded, 3)
}

func TestExecute_FailureLeavesStoreUntouched(t *testing.T) {
	f := newMemFixture(t)
	f.deposit(t, "1", alice)
	f.deposit(t, "2", bob)
	before := snapshot(t, f.store)

	tests := []struct {
		caller thor.Address
		msg    *staking.ExecuteMsg
		kind   string
	}{
		{alice, &staking.ExecuteMsg{GetReward: &staking.GetRewardMsg{TokenIDs: []string{"1", "2"}}}, staking.KindUnauthorized},
		{nft, &staking.ExecuteMsg{ReceiveNft: &staking.ReceiveMsg{Sender: alice.String(), TokenID: "1"}}, staking.KindAlreadyStaked},
		{alice, &staking.ExecuteMsg{SetOwner: &staking.AddressMsg{Address: alice.String()}}, staking.KindUnauthorized},
		{wallet, &staking.ExecuteMsg{DistributeReward: &staking.DistributeRewardMsg{}}, staking.KindCannotDistribute},
		{alice, &staking.ExecuteMsg{}, staking.KindValidationFault},
	}
	for _, tt := range tests {
		out, err := f.exec.Execute(tt.caller, nil, tt.msg)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.Equal(t, tt.kind, staking.Kind(err))
		assert.Equal(t, before, snapshot(t, f.store))
	}

	height, err := f.exec.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), height)
}

func TestExecute_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")

	db, err := lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	f := newFixture(t, db)
	f.deposit(t, "9", alice)
	require.NoError(t, db.Close())

	db, err = lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()

	exec, err := runtime.New(&runtime.Config{Store: db, Contract: genesis.DevContract})
	require.NoError(t, err)

	done, err := exec.Bootstrap(genesis.NewDevnet())
	require.NoError(t, err)
	assert.False(t, done)

	tok, found, err := exec.Token("9")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, alice, tok.Owner)

	height, err := exec.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), height)
}

func TestNotInstantiated(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	exec, err := runtime.New(&runtime.Config{Store: db, Contract: genesis.DevContract})
	require.NoError(t, err)

	_, err = exec.Config()
	assert.ErrorIs(t, err, staking.ErrNotInstantiated)
	_, err = exec.Execute(alice, nil, &staking.ExecuteMsg{UnstakeNft: &staking.TokenMsg{TokenID: "1"}})
	assert.True(t, staking.IsStorageFault(err))

	_, err = exec.Bootstrap(genesis.NewDevnet())
	require.NoError(t, err)

	_, err = exec.Instantiate(owner, genesis.NewDevnet().Params())
	assert.ErrorIs(t, err, staking.ErrValidation)
}

func TestOnCommit(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	var outs []*runtime.Output
	exec, err := runtime.New(&runtime.Config{
		Store:    db,
		Contract: genesis.DevContract,
		Clock:    clockwork.NewFakeClockAt(time.Unix(1_000_000, 0)),
		OnCommit: func(out *runtime.Output) { outs = append(outs, out) },
	})
	require.NoError(t, err)

	_, err = exec.Bootstrap(genesis.NewDevnet())
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, uint32(1), outs[0].BlockNumber)

	_, err = exec.Execute(alice, nil, &staking.ExecuteMsg{UnstakeNft: &staking.TokenMsg{TokenID: "1"}})
	require.Error(t, err)
	assert.Len(t, outs, 1, "reverted calls are not reported")

	out, err := exec.Execute(nft, nil, &staking.ExecuteMsg{
		ReceiveNft: &staking.ReceiveMsg{Sender: alice.String(), TokenID: "1"},
	})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Same(t, out, outs[1])
}
