// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/xenv"
)

func TestExecuteMsg_Decode(t *testing.T) {
	var msg ExecuteMsg
	require.NoError(t, json.Unmarshal([]byte(`{"distribute_reward":{"token_balance":"1000"}}`), &msg))
	method, err := msg.Method()
	require.NoError(t, err)
	assert.Equal(t, "distribute_reward", method)
	assert.Equal(t, uint64(1000), msg.DistributeReward.TokenBalance.Uint64())

	msg = ExecuteMsg{}
	require.NoError(t, json.Unmarshal([]byte(`{"get_reward":{"token_ids":["1","2"]}}`), &msg))
	assert.Equal(t, []string{"1", "2"}, msg.GetReward.TokenIDs)

	msg = ExecuteMsg{}
	require.NoError(t, json.Unmarshal([]byte(`{"set_stake":{"flag":true}}`), &msg))
	assert.True(t, msg.SetStake.Flag)
}

func TestExecuteMsg_Method(t *testing.T) {
	_, err := (&ExecuteMsg{}).Method()
	assert.ErrorIs(t, err, ErrValidation)

	_, err = (&ExecuteMsg{
		UnstakeNft:  &TokenMsg{TokenID: "1"},
		WithdrawNft: &TokenMsg{TokenID: "1"},
	}).Method()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "unstake_nft")
	assert.Contains(t, err.Error(), "withdraw_nft")
}

func TestExecute_Dispatch(t *testing.T) {
	tt := newTester(t)

	exec := func(caller string, raw string, funds ...xenv.Coin) (*Response, error) {
		var msg ExecuteMsg
		require.NoError(t, json.Unmarshal([]byte(raw), &msg))
		callers := map[string]*xenv.Environment{
			"nft":    tt.env(nftAddr, funds...),
			"alice":  tt.env(alice, funds...),
			"owner":  tt.env(ownerAddr, funds...),
			"wallet": tt.env(walletAddr, funds...),
		}
		return tt.staking.Execute(callers[caller], &msg)
	}

	_, err := exec("nft", `{"receive_nft":{"sender":"`+alice.String()+`","token_id":"7"}}`)
	require.NoError(t, err)
	assert.Equal(t, StatusStaked, tt.token("7").Status)

	_, err = exec("wallet", `{"distribute_reward":{"token_balance":"10"}}`, juno(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), tt.token("7").RewardFungible.Uint64())

	resp, err := exec("alice", `{"get_reward":{"token_ids":["7"]}}`)
	require.NoError(t, err)
	assert.Len(t, resp.Instructions, 2)

	_, err = exec("alice", `{"unstake_nft":{"token_id":"7"}}`)
	require.NoError(t, err)
	tt.advance(stakingPeriod)

	resp, err = exec("alice", `{"withdraw_nft":{"token_id":"7"}}`)
	require.NoError(t, err)
	require.Len(t, resp.Instructions, 1)
	assert.Equal(t, KindCollectibleTransfer, resp.Instructions[0].Kind)

	_, err = exec("owner", `{"set_staking_period":{"time":5}}`)
	require.NoError(t, err)
	_, err = exec("owner", `{"set_distribute_period":{"time":6}}`)
	require.NoError(t, err)
	_, err = exec("owner", `{"set_stake":{"flag":false}}`)
	require.NoError(t, err)
	_, err = exec("owner", `{"set_reward_wallet":{"address":"`+bob.String()+`"}}`)
	require.NoError(t, err)
	_, err = exec("owner", `{"set_nft_address":{"address":"`+bob.String()+`"}}`)
	require.NoError(t, err)
	_, err = exec("owner", `{"set_token_address":{"address":"`+bob.String()+`"}}`)
	require.NoError(t, err)

	cfg := tt.config()
	assert.Equal(t, uint64(5), cfg.StakingPeriod)
	assert.Equal(t, uint64(6), cfg.DistributePeriod)
	assert.False(t, cfg.CanStake)
	assert.Equal(t, bob, cfg.RewardWallet)
	assert.Equal(t, bob, cfg.CollectibleContract)
	assert.Equal(t, bob, cfg.FungibleContract)

	resp, err = exec("owner", `{"withdraw_all_money":{"native_amount":"4","fungible_amount":"0"}}`)
	require.NoError(t, err)
	require.Len(t, resp.Instructions, 1)
	assert.Equal(t, KindNativeSend, resp.Instructions[0].Kind)

	_, err = exec("owner", `{"set_owner":{"address":"`+alice.String()+`"}}`)
	require.NoError(t, err)
	assert.Equal(t, alice, tt.config().Owner)

	_, err = exec("owner", `{}`)
	assert.ErrorIs(t, err, ErrValidation)
}
