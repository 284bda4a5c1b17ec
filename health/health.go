// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

// Source reports the height of the committed store.
type Source interface {
	Height() (uint32, error)
}

type LastCall struct {
	ID        string     `json:"id"`
	Height    uint32     `json:"height"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy      bool      `json:"healthy"`
	Height       uint32    `json:"height"`
	StoreError   string    `json:"storeError,omitempty"`
	LastCall     *LastCall `json:"lastCall"`
	Bootstrapped bool      `json:"bootstrapped"`
}

type Health struct {
	lock         sync.RWMutex
	source       Source
	lastCall     *LastCall
	bootstrapped bool
}

func New(source Source) *Health {
	return &Health{source: source}
}

// Committed records a written call.
func (h *Health) Committed(callID string, height uint32, at time.Time) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCall = &LastCall{ID: callID, Height: height, Timestamp: &at}
}

func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

// Status is healthy once bootstrapped while the store stays readable.
func (h *Health) Status() *Status {
	// the source is read outside the lock, Committed runs under the source's own lock
	height, err := h.source.Height()

	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{
		LastCall:     h.lastCall,
		Bootstrapped: h.bootstrapped,
	}
	if err != nil {
		status.StoreError = err.Error()
		return status
	}
	status.Height = height
	status.Healthy = h.bootstrapped
	return status
}
