// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/thor"
)

type Status uint8

const (
	StatusUnknown   = Status(iota) // 0 -> default value, never persisted
	StatusStaked                   // held by the program and earning rewards
	StatusUnstaking                // waiting out the staking period before withdraw
)

func (s Status) String() string {
	switch s {
	case StatusStaked:
		return "Staked"
	case StatusUnstaking:
		return "Unstaking"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "Staked":
		*s = StatusStaked
	case "Unstaking":
		*s = StatusUnstaking
	default:
		return fmt.Errorf("unknown token status %q", str)
	}
	return nil
}

// Token is the staking record of one collectible.
type Token struct {
	TokenID        string       `json:"tokenId"`
	Owner          thor.Address `json:"owner"`
	Status         Status       `json:"status"`
	StakeTime      uint64       `json:"stakeTime"`
	UnstakeTime    uint64       `json:"unstakeTime"` // 0 while staked
	RewardNative   *uint256.Int `json:"rewardNative"`
	RewardFungible *uint256.Int `json:"rewardFungible"`
}

// NewToken returns a freshly staked record with zero rewards.
func NewToken(tokenID string, owner thor.Address, now uint64) *Token {
	return &Token{
		TokenID:        tokenID,
		Owner:          owner,
		Status:         StatusStaked,
		StakeTime:      now,
		RewardNative:   new(uint256.Int),
		RewardFungible: new(uint256.Int),
	}
}

// Elapsed returns the seconds since unstake, clamped at zero if the clock is behind the record.
func (t *Token) Elapsed(now uint64) uint64 {
	if now < t.UnstakeTime {
		return 0
	}
	return now - t.UnstakeTime
}

// Expired tells whether the token finished waiting out the staking period.
// Staked tokens never expire.
func (t *Token) Expired(now, stakingPeriod uint64) bool {
	return t.Status == StatusUnstaking && t.Elapsed(now) >= stakingPeriod
}

// HasRewards tells whether any reward is pending.
func (t *Token) HasRewards() bool {
	return !t.RewardNative.IsZero() || !t.RewardFungible.IsZero()
}
