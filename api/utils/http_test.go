// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/api/utils"
)

func serve(f utils.HandlerFunc) (*httptest.ResponseRecorder, utils.ErrorBody) {
	rec := httptest.NewRecorder()
	utils.WrapHandlerFunc(f)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var body utils.ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestWrapHandlerFunc(t *testing.T) {
	rec, _ := serve(func(w http.ResponseWriter, _ *http.Request) error {
		return utils.WriteJSON(w, utils.M{"ok": true})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, utils.JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec, body := serve(func(http.ResponseWriter, *http.Request) error {
		return utils.BadRequest(errors.New("bad"))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrorBody{Error: "bad"}, body)

	rec, body = serve(func(http.ResponseWriter, *http.Request) error {
		return utils.RevertError(errors.New("unauthorized"), http.StatusForbidden, "Unauthorized")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", body.Kind)

	rec, body = serve(func(http.ResponseWriter, *http.Request) error {
		return errors.New("disk gone")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk gone", body.Error)

	rec, _ = serve(func(http.ResponseWriter, *http.Request) error {
		return utils.NotFound(errors.New("missing"))
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, utils.ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, utils.ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}
