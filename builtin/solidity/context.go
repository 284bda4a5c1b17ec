// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
)

// Context is the storage space of one contract within the state of the running call.
// Slots written through it are visible to later reads of the same call and reverted
// together with the call.
type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, st *state.State) *Context {
	return &Context{address: address, state: st}
}

func (c *Context) Address() thor.Address { return c.address }

func (c *Context) State() *state.State { return c.state }

func (c *Context) read(pos []byte, dec func([]byte) error) error {
	return c.state.DecodeStorage(c.address, pos, dec)
}

func (c *Context) write(pos []byte, value any) error {
	return c.state.EncodeStorage(c.address, pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (c *Context) clear(pos []byte) {
	c.state.SetRawStorage(c.address, pos, nil)
}

func (c *Context) scan(prefix []byte, fn func(key []byte, raw rlp.RawValue) error) error {
	return c.state.IterateStorage(c.address, prefix, fn)
}
