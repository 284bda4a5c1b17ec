// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
)

type httpError struct {
	cause  error
	status int
	kind   string
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// HTTPError creates an error responded with the given status code.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

// RevertError creates an error whose response body also names the revert kind.
func RevertError(cause error, status int, kind string) error {
	return &httpError{cause: cause, status: status, kind: kind}
}

func BadRequest(cause error) error {
	return HTTPError(cause, http.StatusBadRequest)
}

func Forbidden(cause error) error {
	return HTTPError(cause, http.StatusForbidden)
}

func NotFound(cause error) error {
	return HTTPError(cause, http.StatusNotFound)
}

// ErrorBody is the JSON body of a failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HandlerFunc is like http.HandlerFunc but returns an error.
// An error made by HTTPError is responded with its status, anything else with 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		body := ErrorBody{Error: err.Error()}
		if he, ok := err.(*httpError); ok {
			status = he.status
			body.Kind = he.kind
		}
		w.Header().Set("Content-Type", JSONContentType)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(&body)
	}
}

const JSONContentType = "application/json; charset=utf-8"

// ParseJSON decodes a JSON object in strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON responds obj in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
