// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaker/cache"
	"github.com/vechain/nftstaker/kv"
)

const storageBucket = kv.Bucket("s")

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue]
}

// NewStater create a new stater.
// Storage values are kept under their own bucket of db. A cacheSize of zero disables the read cache.
func NewStater(db kv.Store, cacheSize int) *Stater {
	s := &Stater{store: storageBucket.NewStore(db)}
	if cacheSize > 0 {
		s.cache, _ = cache.NewLRU[storageKey, rlp.RawValue](cacheSize)
	}
	return s
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return New(s.store, s.cache)
}

// CacheStats returns hit and miss counts of the read cache.
func (s *Stater) CacheStats() (hit, miss int64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}
