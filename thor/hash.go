// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var hasherPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b returns the blake2b-256 digest of the concatenated parts.
func Blake2b(data ...[]byte) (out Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(out[:0])
	return
}
