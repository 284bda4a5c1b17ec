// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/thor"
)

//
// Getters - no state change
//

// Config returns a snapshot of the program config.
func (s *Staking) Config() (*Config, error) {
	return s.program.Get()
}

// Token looks up the record of tokenID. The bool result is false when it is not staked.
func (s *Staking) Token(tokenID string) (*Token, bool, error) {
	return s.ledger.Get(tokenID)
}

// TokenIDs lists the ids of all staked tokens in ascending order.
func (s *Staking) TokenIDs() ([]string, error) {
	ids := []string{}
	err := s.ledger.Iterate(func(t *Token) error {
		ids = append(ids, t.TokenID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Tokens lists all records in ascending token id order.
func (s *Staking) Tokens() ([]*Token, error) {
	tokens, err := s.ledger.All()
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []*Token{}
	}
	return tokens, nil
}

// TokensOf lists the records owned by owner in ascending token id order.
func (s *Staking) TokensOf(owner thor.Address) ([]*Token, error) {
	tokens := []*Token{}
	err := s.ledger.Iterate(func(t *Token) error {
		if t.Owner == owner {
			tokens = append(tokens, t)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithMessage(err, "tokens of owner")
	}
	return tokens, nil
}
