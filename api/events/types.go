// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/thor"
)

type Meta struct {
	CallID    string       `json:"callId"`
	Index     uint32       `json:"index"`
	BlockTime uint64       `json:"blockTime"`
	Caller    thor.Address `json:"caller"`
}

type FilteredEvent struct {
	Type    string            `json:"type"`
	TokenID string            `json:"tokenId,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Meta    Meta              `json:"meta"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Type:    ev.Type,
		TokenID: ev.TokenID,
		Attrs:   ev.Attrs,
		Meta: Meta{
			CallID:    ev.CallID,
			Index:     ev.Index,
			BlockTime: ev.BlockTime,
			Caller:    ev.Caller,
		},
	}
}

type FilteredInstruction struct {
	Kind      string        `json:"kind"`
	Contract  *thor.Address `json:"contract,omitempty"`
	Owner     *thor.Address `json:"owner,omitempty"`
	Recipient thor.Address  `json:"recipient"`
	Amount    *uint256.Int  `json:"amount,omitempty"`
	Denom     string        `json:"denom,omitempty"`
	TokenID   string        `json:"tokenId,omitempty"`
	CallID    string        `json:"callId"`
	Index     uint32        `json:"index"`
	BlockTime uint64        `json:"blockTime"`
}

func convertInstruction(in *logdb.Instruction) *FilteredInstruction {
	return &FilteredInstruction{
		Kind:      in.Kind,
		Contract:  in.Contract,
		Owner:     in.Owner,
		Recipient: in.Recipient,
		Amount:    in.Amount,
		Denom:     in.Denom,
		TokenID:   in.TokenID,
		CallID:    in.CallID,
		Index:     in.Index,
		BlockTime: in.BlockTime,
	}
}
