// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
)

// decodeValue decodes raw into a V. Empty raw yields the zero V, which is nil for pointer types.
func decodeValue[V any](raw []byte) (value V, found bool, err error) {
	if len(raw) == 0 {
		return value, false, nil
	}
	if reflect.TypeFor[V]().Kind() == reflect.Ptr {
		value = reflect.New(reflect.TypeFor[V]().Elem()).Interface().(V)
		err = rlp.DecodeBytes(raw, value)
	} else {
		err = rlp.DecodeBytes(raw, &value)
	}
	return value, err == nil, err
}
