// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU[string, string](2)
	require.NoError(t, err)

	loads := 0
	loader := func(key string) (string, error) {
		loads++
		return key + "!", nil
	}

	v, err := c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)

	v, err = c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
	assert.Equal(t, 1, loads)

	hit, miss := c.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	_, err = c.GetOrLoad("b", func(string) (string, error) { return "", errors.New("load failed") })
	assert.EqualError(t, err, "load failed")
	assert.False(t, c.Contains("b"))
}

func TestLRUEvictAndPurge(t *testing.T) {
	c, err := NewLRU[int, string](2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		c.Add(i, strconv.Itoa(i))
	}
	assert.False(t, c.Contains(0))
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))

	c.Purge()
	assert.False(t, c.Contains(2))
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)
}
