// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaker/cache"
	"github.com/vechain/nftstaker/kv"
)

// Stage abstracts the changes of a state ready to be written.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU[storageKey, rlp.RawValue]
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the store in a single batch.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}

	batch := s.store.NewBatch()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.dbKey())
		} else {
			err = batch.Put(k.dbKey(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		// a failed write may be partially applied
		if s.cache != nil {
			s.cache.Purge()
		}
		return &Error{err}
	}

	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	return nil
}
