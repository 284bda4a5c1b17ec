// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  thor.Address
	Name   string
}

type stringKey string

func (k stringKey) Bytes() []byte { return []byte(k) }

// newTestContext returns a fresh Context with in-memory DB.
func newTestContext(t *testing.T) (*Context, *state.Stater) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater := state.NewStater(db, 0)
	return NewContext(thor.Address{1}, stater.NewState()), stater
}

func TestMappingPointerValues(t *testing.T) {
	ctx, _ := newTestContext(t)
	mapping := NewMapping[stringKey, *TestStruct](ctx, thor.Blake2b([]byte("structs")))

	value, found, err := mapping.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)

	want := &TestStruct{Field1: 100, Field2: 200, Addr1: thor.Address{9}, Name: "one"}
	require.NoError(t, mapping.Insert("one", want))

	got, found, err := mapping.Get("one")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	assert.Error(t, mapping.Insert("one", want), "double insert")
	assert.Error(t, mapping.Update("two", want), "update of missing key")

	want.Field1 = 1
	require.NoError(t, mapping.Update("one", want))
	got, _, err = mapping.Get("one")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Field1)

	mapping.Delete("one")
	_, found, err = mapping.Get("one")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMappingIterate(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := NewMapping[stringKey, uint64](ctx, thor.Blake2b([]byte("a")))
	b := NewMapping[stringKey, uint64](ctx, thor.Blake2b([]byte("b")))

	require.NoError(t, a.Insert("z", 3))
	require.NoError(t, a.Insert("x", 1))
	require.NoError(t, a.Insert("y", 2))
	require.NoError(t, b.Insert("w", 9))

	var keys []string
	var values []uint64
	require.NoError(t, a.Iterate(func(key []byte, v uint64) error {
		keys = append(keys, string(key))
		values = append(values, v)
		return nil
	}))
	assert.Equal(t, []string{"x", "y", "z"}, keys)
	assert.Equal(t, []uint64{1, 2, 3}, values)
}

func TestRaw(t *testing.T) {
	ctx, stater := newTestContext(t)
	raw := NewRaw[*TestStruct](ctx, thor.Blake2b([]byte("config")))

	v, found, err := raw.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)

	require.NoError(t, raw.Upsert(&TestStruct{Field1: 5}))
	require.NoError(t, ctx.State().Stage().Commit())

	reread := NewRaw[*TestStruct](NewContext(ctx.Address(), stater.NewState()), thor.Blake2b([]byte("config")))
	v, err = reread.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.Field1)
}
