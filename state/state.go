// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaker/cache"
	"github.com/vechain/nftstaker/kv"
	"github.com/vechain/nftstaker/stackedmap"
	"github.com/vechain/nftstaker/thor"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsError reports whether err is, or wraps, a state access failure.
func IsError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

type storageKey struct {
	addr thor.Address
	key  string
}

func (k storageKey) dbKey() []byte {
	return append(k.addr.Bytes(), k.key...)
}

// State manages the storage of contracts.
type State struct {
	store kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue]
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object.
// The cache is optional and holds committed values only.
func New(store kv.Store, cache *cache.LRU[storageKey, rlp.RawValue]) *State {
	s := &State{
		store: store,
		cache: cache,
	}
	s.sm = stackedmap.New(s.committedGetter)
	return s
}

// committedGetter implements stackedmap.MapGetter.
func (s *State) committedGetter(key storageKey) (rlp.RawValue, bool, error) {
	load := func(key storageKey) (rlp.RawValue, error) {
		val, err := s.store.Get(key.dbKey())
		if err != nil {
			if s.store.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return val, nil
	}

	var (
		v   rlp.RawValue
		err error
	)
	if s.cache != nil {
		v, err = s.cache.GetOrLoad(key, load)
	} else {
		v, err = load(key)
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
// An empty value means the key is not set.
func (s *State) GetRawStorage(addr thor.Address, key []byte) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, string(key)})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
// Setting an empty value deletes the key.
func (s *State) SetRawStorage(addr thor.Address, key []byte, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, string(key)}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key []byte, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr thor.Address, key []byte, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// IterateStorage calls fn for every set key of addr starting with prefix, in ascending key order.
// Pending writes are merged over committed values. Iteration stops at the first error returned by fn.
func (s *State) IterateStorage(addr thor.Address, prefix []byte, fn func(key []byte, raw rlp.RawValue) error) error {
	merged := make(map[string]rlp.RawValue)

	it := s.store.Iterate(kv.PrefixRange(append(addr.Bytes(), prefix...)))
	for it.Next() {
		key := it.Key()[thor.AddressLength:]
		merged[string(key)] = append(rlp.RawValue(nil), it.Value()...)
	}
	it.Release()
	if err := it.Error(); err != nil {
		return &Error{err}
	}

	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		if k.addr == addr && bytes.HasPrefix([]byte(k.key), prefix) {
			merged[k.key] = v
		}
		return true
	})

	keys := make([]string, 0, len(merged))
	for k, v := range merged {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), merged[k]); err != nil {
			return err
		}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the net changes of the state for committing.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{store: s.store, cache: s.cache, changes: changes}
}
