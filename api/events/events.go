// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/thor"
)

type Events struct {
	logDB *logdb.LogDB
	limit uint64
}

// New creates the history endpoints. limit caps the page size of a query.
func New(logDB *logdb.LogDB, limit uint64) *Events {
	return &Events{logDB: logDB, limit: min(limit, math.MaxInt64)}
}

// parseUint reads an optional query integer. sqlite binds signed 64-bit values,
// so anything above math.MaxInt64 is rejected here.
func parseUint(query url.Values, name string) (*uint64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	if v > math.MaxInt64 {
		return nil, utils.BadRequest(errors.Errorf("%s: exceeds %d", name, int64(math.MaxInt64)))
	}
	return &v, nil
}

func parseAddress(query url.Values, name string) (*thor.Address, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	addr, err := thor.ParseAddress(raw)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func optionalString(query url.Values, name string) *string {
	if v := query.Get(name); v != "" {
		return &v
	}
	return nil
}

// parseCommon reads the range, paging and order parameters shared by both queries.
func (e *Events) parseCommon(query url.Values) (*logdb.Range, *logdb.Options, logdb.Order, error) {
	from, err := parseUint(query, "from")
	if err != nil {
		return nil, nil, "", err
	}
	to, err := parseUint(query, "to")
	if err != nil {
		return nil, nil, "", err
	}
	var rng *logdb.Range
	switch {
	case to != nil:
		rng = &logdb.Range{To: *to}
		if from != nil {
			rng.From = *from
		}
		if rng.To < rng.From {
			return nil, nil, "", utils.BadRequest(errors.New("to: must not be below from"))
		}
	case from != nil && *from > 0:
		// To below From leaves it open
		rng = &logdb.Range{From: *from}
	}

	offset, err := parseUint(query, "offset")
	if err != nil {
		return nil, nil, "", err
	}
	limit, err := parseUint(query, "limit")
	if err != nil {
		return nil, nil, "", err
	}
	opts := &logdb.Options{Limit: e.limit}
	if offset != nil {
		opts.Offset = *offset
	}
	if limit != nil {
		if *limit > e.limit {
			return nil, nil, "", utils.Forbidden(errors.Errorf("limit: exceeds the maximum of %d", e.limit))
		}
		opts.Limit = *limit
	}

	order := logdb.ASC
	switch query.Get("order") {
	case "", "asc":
	case "desc":
		order = logdb.DESC
	default:
		return nil, nil, "", utils.BadRequest(errors.New("order: must be asc or desc"))
	}
	return rng, opts, order, nil
}

func (e *Events) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	rng, opts, order, err := e.parseCommon(query)
	if err != nil {
		return err
	}
	caller, err := parseAddress(query, "caller")
	if err != nil {
		return err
	}
	events, err := e.logDB.FilterEvents(req.Context(), &logdb.EventFilter{
		TokenID: optionalString(query, "tokenId"),
		Types:   query["type"],
		Caller:  caller,
		CallID:  optionalString(query, "callId"),
		Range:   rng,
		Options: opts,
		Order:   order,
	})
	if err != nil {
		return err
	}
	out := make([]*FilteredEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, convertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) handleFilterInstructions(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	rng, opts, order, err := e.parseCommon(query)
	if err != nil {
		return err
	}
	recipient, err := parseAddress(query, "recipient")
	if err != nil {
		return err
	}
	instructions, err := e.logDB.FilterInstructions(req.Context(), &logdb.InstructionFilter{
		Recipient: recipient,
		Kind:      optionalString(query, "kind"),
		CallID:    optionalString(query, "callId"),
		Range:     rng,
		Options:   opts,
		Order:     order,
	})
	if err != nil {
		return err
	}
	out := make([]*FilteredInstruction, 0, len(instructions))
	for _, in := range instructions {
		out = append(out, convertInstruction(in))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("GET /staking/events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilterEvents))
	sub.Path("/instructions").
		Methods(http.MethodGet).
		Name("GET /staking/instructions").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilterInstructions))
}
