// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/thor"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Entries are laid out as basePos||key so that a mapping can be iterated in key order,
// which a Solidity mapping cannot.
type Mapping[K Key, V any] struct {
	context *Context
	basePos thor.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos thor.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) []byte {
	return append(m.basePos.Bytes(), key.Bytes()...)
}

// Get returns the value of key and whether it is set.
func (m *Mapping[K, V]) Get(key K) (value V, found bool, err error) {
	err = m.context.read(m.position(key), func(raw []byte) error {
		var derr error
		value, found, derr = decodeValue[V](raw)
		return derr
	})
	return
}

// Insert sets the value of a key which must not be set yet.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	_, found, err := m.Get(key)
	if err != nil {
		return err
	}
	if found {
		return errors.Errorf("mapping: key %x already exists", key.Bytes())
	}
	return m.set(key, value)
}

// Update sets the value of a key which must be set already.
func (m *Mapping[K, V]) Update(key K, value V) error {
	_, found, err := m.Get(key)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("mapping: key %x not found", key.Bytes())
	}
	return m.set(key, value)
}

// Delete clears the key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.clear(m.position(key))
}

// Iterate visits all set entries in ascending key order.
func (m *Mapping[K, V]) Iterate(fn func(key []byte, value V) error) error {
	prefix := m.basePos.Bytes()
	return m.context.scan(prefix, func(k []byte, raw rlp.RawValue) error {
		value, _, err := decodeValue[V](raw)
		if err != nil {
			return errors.Wrapf(err, "mapping: decode %x", k)
		}
		return fn(k[len(prefix):], value)
	})
}

func (m *Mapping[K, V]) set(key K, value V) error {
	return m.context.write(m.position(key), value)
}
