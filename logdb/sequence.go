// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "math"

// sequence packs the committed call number and the row index within the call.
type sequence int64

func newSequence(callNum uint32, index uint32) sequence {
	if (index & math.MaxInt32) != index {
		panic("index too large")
	}
	return (sequence(callNum) << 31) | sequence(index)
}

func (s sequence) CallNum() uint32 { return uint32(s >> 31) }

func (s sequence) Index() uint32 { return uint32(s & math.MaxInt32) }
