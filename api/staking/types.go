// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	builtin "github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/thor"
	"github.com/vechain/nftstaker/xenv"
)

// ExecuteRequest is the body of POST /execute.
type ExecuteRequest struct {
	Caller *thor.Address       `json:"caller"`
	Funds  []xenv.Coin         `json:"funds,omitempty"`
	Msg    *builtin.ExecuteMsg `json:"msg"`
}

type TokenIDs struct {
	TokenIDs []string `json:"tokenIds"`
}

type CurrentTime struct {
	Time     uint64 `json:"time"`
	Height   uint32 `json:"height"`
	Eligible uint64 `json:"eligible"`
}
