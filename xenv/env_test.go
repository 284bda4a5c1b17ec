// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/nftstaker/thor"
)

func TestFundsOf(t *testing.T) {
	env := New(thor.Address{1}, &BlockContext{Number: 3, Time: 100}, &CallContext{
		Caller: thor.Address{2},
		Funds: []Coin{
			{Denom: "ujuno", Amount: uint256.NewInt(10)},
			{Denom: "uatom", Amount: uint256.NewInt(99)},
			{Denom: "ujuno", Amount: uint256.NewInt(5)},
			{Denom: "ujuno"},
		},
	})

	sum, ok := env.FundsOf("ujuno")
	assert.True(t, ok)
	assert.Equal(t, uint64(15), sum.Uint64())

	sum, ok = env.FundsOf("none")
	assert.True(t, ok)
	assert.True(t, sum.IsZero())

	assert.Equal(t, thor.Address{2}, env.Caller())
	assert.Equal(t, thor.Address{1}, env.Contract())
	assert.Equal(t, uint64(100), env.Now())
}

func TestFundsOfOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	env := New(thor.Address{}, &BlockContext{}, &CallContext{
		Funds: []Coin{{Denom: "ujuno", Amount: max}, {Denom: "ujuno", Amount: uint256.NewInt(1)}},
	})
	_, ok := env.FundsOf("ujuno")
	assert.False(t, ok)
}
