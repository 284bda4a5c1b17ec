// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/thor"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// Coin is an amount of a native denomination.
type Coin struct {
	Denom  string       `json:"denom"`
	Amount *uint256.Int `json:"amount"`
}

// CallContext call context.
type CallContext struct {
	ID     string
	Caller thor.Address
	Funds  []Coin
}

// Environment an env to execute a contract call.
type Environment struct {
	contract thor.Address
	blockCtx *BlockContext
	callCtx  *CallContext
}

// New create a new env.
func New(contract thor.Address, blockCtx *BlockContext, callCtx *CallContext) *Environment {
	return &Environment{
		contract: contract,
		blockCtx: blockCtx,
		callCtx:  callCtx,
	}
}

func (env *Environment) Contract() thor.Address { return env.contract }
func (env *Environment) Caller() thor.Address   { return env.callCtx.Caller }
func (env *Environment) Now() uint64            { return env.blockCtx.Time }

// FundsOf sums the attached funds of the given denom.
// The second return value is false if the sum overflows.
func (env *Environment) FundsOf(denom string) (*uint256.Int, bool) {
	sum := new(uint256.Int)
	for _, coin := range env.callCtx.Funds {
		if coin.Denom != denom || coin.Amount == nil {
			continue
		}
		if _, overflow := sum.AddOverflow(sum, coin.Amount); overflow {
			return nil, false
		}
	}
	return sum, true
}
