// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/utils"
	builtin "github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/runtime"
	"github.com/vechain/nftstaker/thor"
)

type Staking struct {
	exec *runtime.Executor
}

func New(exec *runtime.Executor) *Staking {
	return &Staking{exec: exec}
}

// callError maps an engine failure to its response.
func callError(err error) error {
	if builtin.IsStorageFault(err) {
		return err
	}
	kind := builtin.Kind(err)
	status := http.StatusBadRequest
	if kind == builtin.KindUnauthorized {
		status = http.StatusForbidden
	}
	return utils.RevertError(err, status, kind)
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := s.exec.Config()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, cfg)
}

func (s *Staking) handleGetTokenIDs(w http.ResponseWriter, _ *http.Request) error {
	ids, err := s.exec.TokenIDs()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &TokenIDs{TokenIDs: ids})
}

func (s *Staking) handleGetTokens(w http.ResponseWriter, _ *http.Request) error {
	tokens, err := s.exec.Tokens()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, tokens)
}

func (s *Staking) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	id := mux.Vars(req)["id"]
	tok, found, err := s.exec.Token(id)
	if err != nil {
		return err
	}
	if !found {
		return utils.NotFound(errors.Errorf("token %s not staked", id))
	}
	return utils.WriteJSON(w, tok)
}

func (s *Staking) handleGetTokensOf(w http.ResponseWriter, req *http.Request) error {
	owner, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	tokens, err := s.exec.TokensOf(*owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, tokens)
}

func (s *Staking) handleGetTime(w http.ResponseWriter, _ *http.Request) error {
	height, err := s.exec.Height()
	if err != nil {
		return err
	}
	eligible, err := s.exec.Eligible()
	if err != nil && !errors.Is(err, builtin.ErrNotInstantiated) {
		return err
	}
	return utils.WriteJSON(w, &CurrentTime{
		Time:     s.exec.CurrentTime(),
		Height:   height,
		Eligible: eligible,
	})
}

func (s *Staking) handleExecute(w http.ResponseWriter, req *http.Request) error {
	var body ExecuteRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return utils.BadRequest(errors.New("body: caller is required"))
	}
	if body.Msg == nil {
		return utils.BadRequest(errors.New("body: msg is required"))
	}
	out, err := s.exec.Execute(*body.Caller, body.Funds, body.Msg)
	if err != nil {
		return callError(err)
	}
	return utils.WriteJSON(w, out)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /staking/config").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetConfig))
	sub.Path("/tokens").
		Methods(http.MethodGet).
		Name("GET /staking/tokens").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTokenIDs))
	sub.Path("/tokens/records").
		Methods(http.MethodGet).
		Name("GET /staking/tokens/records").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTokens))
	sub.Path("/tokens/{id}").
		Methods(http.MethodGet).
		Name("GET /staking/tokens/{id}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetToken))
	sub.Path("/owners/{address}/tokens").
		Methods(http.MethodGet).
		Name("GET /staking/owners/{address}/tokens").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTokensOf))
	sub.Path("/time").
		Methods(http.MethodGet).
		Name("GET /staking/time").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTime))
	sub.Path("/execute").
		Methods(http.MethodPost).
		Name("POST /staking/execute").
		HandlerFunc(utils.WrapHandlerFunc(s.handleExecute))
}
