// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/thor"
)

// Event is a staking.Event as stored, with the context of the call which emitted it.
type Event struct {
	CallID    string
	Index     uint32
	BlockTime uint64
	Caller    thor.Address
	Type      string
	TokenID   string
	Attrs     map[string]string
}

func newEvent(b *CallBatch, index uint32, ev *staking.Event) *Event {
	return &Event{
		CallID:    b.callID,
		Index:     index,
		BlockTime: b.blockTime,
		Caller:    b.caller,
		Type:      ev.Type,
		TokenID:   ev.TokenID,
		Attrs:     ev.Attrs,
	}
}

// Instruction is a queued outbound instruction as stored.
type Instruction struct {
	CallID    string
	Index     uint32
	BlockTime uint64
	Kind      string
	Contract  *thor.Address
	Owner     *thor.Address
	Recipient thor.Address
	Amount    *uint256.Int
	Denom     string
	TokenID   string
}

func newInstruction(b *CallBatch, index uint32, in *staking.Instruction) *Instruction {
	return &Instruction{
		CallID:    b.callID,
		Index:     index,
		BlockTime: b.blockTime,
		Kind:      in.Kind.String(),
		Contract:  in.Contract,
		Owner:     in.Owner,
		Recipient: in.Recipient,
		Amount:    in.Amount,
		Denom:     in.Denom,
		TokenID:   in.TokenID,
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds block time, both ends inclusive. To below From leaves the range open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventFilter struct {
	TokenID *string
	Types   []string
	Caller  *thor.Address
	CallID  *string
	Range   *Range
	Options *Options
	Order   Order // default asc
}

type InstructionFilter struct {
	Recipient *thor.Address
	Kind      *string
	CallID    *string
	Range     *Range
	Options   *Options
	Order     Order // default asc
}
