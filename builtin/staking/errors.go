// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaker/builtin/staking/program"
	"github.com/vechain/nftstaker/builtin/staking/reverts"
)

// Error kinds. Every failed call maps to exactly one of them.
const (
	KindUnauthorized             = "Unauthorized"
	KindWrongCollectibleContract = "WrongCollectibleContract"
	KindAlreadyStaked            = "AlreadyStaked"
	KindNotStaked                = "NotStaked"
	KindStatusError              = "StatusError"
	KindTimeRemaining            = "TimeRemaining"
	KindCannotStake              = "CannotStake"
	KindCannotDistribute         = "CannotDistribute"
	KindStorageFault             = "StorageFault"
	KindValidationFault          = "ValidationFault"
)

var (
	ErrUnauthorized             = reverts.New(KindUnauthorized, "unauthorized")
	ErrWrongCollectibleContract = reverts.New(KindWrongCollectibleContract, "wrong collectible contract")
	ErrAlreadyStaked            = reverts.New(KindAlreadyStaked, "token already staked")
	ErrNotStaked                = reverts.New(KindNotStaked, "token not staked")
	ErrStatus                   = reverts.New(KindStatusError, "token is not unstaking")
	ErrTimeRemaining            = reverts.New(KindTimeRemaining, "staking period not elapsed")
	ErrCannotStake              = reverts.New(KindCannotStake, "staking is disabled")
	ErrCannotDistribute         = reverts.New(KindCannotDistribute, "distribute period not elapsed")
	ErrValidation               = reverts.New(KindValidationFault, "invalid input")
	ErrOverflow                 = reverts.New(KindValidationFault, "amount overflow")
)

// ErrNotInstantiated is returned by every call made before Instantiate. It is a storage fault.
var ErrNotInstantiated = program.ErrNotInstantiated

// Kind returns the error kind of err. Any failure that is not a revert is a storage fault.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if kind := reverts.KindOf(err); kind != "" {
		return kind
	}
	return KindStorageFault
}

// IsStorageFault tells whether err was raised by the storage layer rather than by contract logic.
func IsStorageFault(err error) bool {
	return err != nil && !reverts.IsRevertErr(err)
}
