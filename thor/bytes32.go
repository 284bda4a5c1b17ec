// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Bytes32 is a 32 byte digest, used for storage slots and genesis ids.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return hexutil.Encode(b[:])
}

// AbbrevString keeps the first and last four bytes, for logs.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", b[:4], b[28:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 decodes a 0x prefixed hex string of exactly 32 bytes.
func ParseBytes32(s string) (Bytes32, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return Bytes32{}, errors.WithMessage(err, "bytes32")
	}
	if len(raw) != len(Bytes32{}) {
		return Bytes32{}, errors.Errorf("bytes32: invalid length %d", len(raw))
	}
	return Bytes32(raw), nil
}

// BytesToBytes32 left pads b, or keeps its last 32 bytes when it is longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
