// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/thor"
)

// InstructionKind enumerates the outbound instructions.
type InstructionKind uint8

const (
	KindFungibleTransfer InstructionKind = iota + 1
	KindFungibleTransferFrom
	KindNativeSend
	KindCollectibleTransfer
)

var instructionKindNames = map[InstructionKind]string{
	KindFungibleTransfer:     "fungible_transfer",
	KindFungibleTransferFrom: "fungible_transfer_from",
	KindNativeSend:           "native_send",
	KindCollectibleTransfer:  "collectible_transfer",
}

func (k InstructionKind) String() string {
	if name, ok := instructionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

func (k InstructionKind) MarshalText() ([]byte, error) {
	if _, ok := instructionKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown instruction kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *InstructionKind) UnmarshalText(text []byte) error {
	for kind, name := range instructionKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown instruction kind %q", text)
}

// Instruction is a message the program sends to another party once the call commits.
// Delivery is fire-and-forget.
type Instruction struct {
	Kind      InstructionKind `json:"kind"`
	Contract  *thor.Address   `json:"contract,omitempty"` // fungible or collectible contract, nil for native sends
	Owner     *thor.Address   `json:"owner,omitempty"`    // source of a transfer-from
	Recipient thor.Address    `json:"recipient"`
	Amount    *uint256.Int    `json:"amount,omitempty"`
	Denom     string          `json:"denom,omitempty"`
	TokenID   string          `json:"tokenId,omitempty"`
}

func fungibleTransfer(contract, recipient thor.Address, amount *uint256.Int) Instruction {
	return Instruction{
		Kind:      KindFungibleTransfer,
		Contract:  &contract,
		Recipient: recipient,
		Amount:    amount.Clone(),
	}
}

func fungibleTransferFrom(contract, owner, recipient thor.Address, amount *uint256.Int) Instruction {
	return Instruction{
		Kind:      KindFungibleTransferFrom,
		Contract:  &contract,
		Owner:     &owner,
		Recipient: recipient,
		Amount:    amount.Clone(),
	}
}

func nativeSend(recipient thor.Address, denom string, amount *uint256.Int) Instruction {
	return Instruction{
		Kind:      KindNativeSend,
		Recipient: recipient,
		Denom:     denom,
		Amount:    amount.Clone(),
	}
}

func collectibleTransfer(contract, recipient thor.Address, tokenID string) Instruction {
	return Instruction{
		Kind:      KindCollectibleTransfer,
		Contract:  &contract,
		Recipient: recipient,
		TokenID:   tokenID,
	}
}
