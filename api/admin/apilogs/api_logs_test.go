// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, enabled *atomic.Bool, method, body string) (int, LogStatus) {
	router := mux.NewRouter()
	New(enabled).Mount(router, "/admin/apilogs")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, "/admin/apilogs", strings.NewReader(body)))

	var status LogStatus
	if rr.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
	}
	return rr.Code, status
}

func TestAPILogsToggle(t *testing.T) {
	enabled := &atomic.Bool{}

	code, status := serve(t, enabled, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, status.Enabled)

	code, status = serve(t, enabled, http.MethodPost, `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Enabled)
	assert.True(t, enabled.Load())

	code, _ = serve(t, enabled, http.MethodPost, `{"enabled":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, enabled.Load())
}
