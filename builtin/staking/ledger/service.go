// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/solidity"
	"github.com/vechain/nftstaker/thor"
)

var slotTokens = thor.Blake2b([]byte("tokens"))

type tokenKey string

func (k tokenKey) Bytes() []byte {
	return []byte(k)
}

// Service is the token ledger. It holds at most one record per token id.
type Service struct {
	tokens *solidity.Mapping[tokenKey, *Token]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		tokens: solidity.NewMapping[tokenKey, *Token](sctx, slotTokens),
	}
}

// Get looks a token up. The bool result is false when the token is not staked.
func (s *Service) Get(tokenID string) (*Token, bool, error) {
	t, found, err := s.tokens.Get(tokenKey(tokenID))
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get token")
	}
	if !found {
		return nil, false, nil
	}
	normalize(t)
	return t, true, nil
}

// Add stores a new record. It fails if the token already has one.
func (s *Service) Add(t *Token) error {
	if err := s.tokens.Insert(tokenKey(t.TokenID), t); err != nil {
		return errors.Wrap(err, "failed to add token")
	}
	return nil
}

// Update replaces an existing record.
func (s *Service) Update(t *Token) error {
	if err := s.tokens.Update(tokenKey(t.TokenID), t); err != nil {
		return errors.Wrap(err, "failed to update token")
	}
	return nil
}

// Remove deletes the record of tokenID.
func (s *Service) Remove(tokenID string) {
	s.tokens.Delete(tokenKey(tokenID))
}

// Iterate visits all records in ascending token id order.
func (s *Service) Iterate(fn func(t *Token) error) error {
	return s.tokens.Iterate(func(key []byte, t *Token) error {
		if t.TokenID != string(key) {
			return errors.Errorf("token record %q stored under key %q", t.TokenID, key)
		}
		normalize(t)
		return fn(t)
	})
}

// All returns all records in ascending token id order.
func (s *Service) All() ([]*Token, error) {
	var tokens []*Token
	err := s.Iterate(func(t *Token) error {
		tokens = append(tokens, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func normalize(t *Token) {
	if t.RewardNative == nil {
		t.RewardNative = new(uint256.Int)
	}
	if t.RewardFungible == nil {
		t.RewardFungible = new(uint256.Int)
	}
}
