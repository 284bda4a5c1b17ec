// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "github.com/vechain/nftstaker/thor"

// Raw is a single rlp encoded value stored in one slot.
type Raw[V any] struct {
	context *Context
	pos     thor.Bytes32
}

func NewRaw[V any](context *Context, pos thor.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

// Get returns the stored value, or the zero V if the slot is empty.
func (r *Raw[V]) Get() (value V, err error) {
	value, _, err = r.Load()
	return
}

// Load returns the stored value and whether the slot is set.
func (r *Raw[V]) Load() (value V, found bool, err error) {
	err = r.context.read(r.pos.Bytes(), func(raw []byte) error {
		var derr error
		value, found, derr = decodeValue[V](raw)
		return derr
	})
	return
}

// Upsert writes the value regardless of whether the slot was set.
func (r *Raw[V]) Upsert(value V) error {
	return r.context.write(r.pos.Bytes(), value)
}
