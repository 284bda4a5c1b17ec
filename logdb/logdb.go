// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb keeps the history of committed staking calls in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/thor"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmts         *statements

	lock    sync.Mutex
	callNum uint32
}

// New creates or opens the log db at path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if path == ":memory:" {
		// every connection would see its own database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema + instructionTableSchema); err != nil {
		return nil, err
	}

	var last sql.NullInt64
	if err := db.QueryRow("SELECT MAX(seq) FROM (SELECT MAX(seq) AS seq FROM event UNION ALL SELECT MAX(seq) FROM instruction)").Scan(&last); err != nil {
		return nil, err
	}

	stmts, err := prepareStatements(db)
	if err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmts:         stmts,
		callNum:       sequence(last.Int64).CallNum(),
	}, nil
}

// NewMem creates a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

func (db *LogDB) Close() error {
	stmtErr := db.stmts.Close()
	if err := db.db.Close(); err != nil {
		return err
	}
	return stmtErr
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Prepare starts a batch for the call identified by callID.
func (db *LogDB) Prepare(callID string, caller thor.Address, blockTime uint64) *CallBatch {
	return &CallBatch{
		db:        db,
		callID:    callID,
		caller:    caller,
		blockTime: blockTime,
	}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		filter = &EventFilter{}
	}
	metricsHandleEventsFilter(filter)

	var (
		args []any
		stmt = "SELECT callID, seq, blockTime, caller, type, tokenID, attrs FROM event WHERE 1"
	)
	if filter.Range != nil {
		stmt, args = rangeClause(stmt, args, filter.Range)
	}
	if filter.TokenID != nil {
		stmt += " AND tokenID = ?"
		args = append(args, *filter.TokenID)
	}
	if len(filter.Types) > 0 {
		stmt += " AND type IN (?" + strings.Repeat(",?", len(filter.Types)-1) + ")"
		for _, typ := range filter.Types {
			args = append(args, typ)
		}
	}
	if filter.Caller != nil {
		stmt += " AND caller = ?"
		args = append(args, filter.Caller.Bytes())
	}
	if filter.CallID != nil {
		stmt += " AND callID = ?"
		args = append(args, *filter.CallID)
	}
	stmt, args = orderAndLimit(stmt, args, filter.Order, filter.Options)

	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			ev      Event
			seq     int64
			caller  []byte
			tokenID sql.NullString
			attrs   sql.NullString
		)
		if err := rows.Scan(&ev.CallID, &seq, &ev.BlockTime, &caller, &ev.Type, &tokenID, &attrs); err != nil {
			return nil, err
		}
		ev.Index = sequence(seq).Index()
		ev.Caller = thor.BytesToAddress(caller)
		ev.TokenID = tokenID.String
		if attrs.Valid && attrs.String != "" {
			if err := json.Unmarshal([]byte(attrs.String), &ev.Attrs); err != nil {
				return nil, errors.Wrap(err, "decode attrs")
			}
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) FilterInstructions(ctx context.Context, filter *InstructionFilter) ([]*Instruction, error) {
	if filter == nil {
		filter = &InstructionFilter{}
	}
	metricsHandleInstructionsFilter(filter)

	var (
		args []any
		stmt = "SELECT callID, seq, blockTime, kind, contract, owner, recipient, amount, denom, tokenID FROM instruction WHERE 1"
	)
	if filter.Range != nil {
		stmt, args = rangeClause(stmt, args, filter.Range)
	}
	if filter.Recipient != nil {
		stmt += " AND recipient = ?"
		args = append(args, filter.Recipient.Bytes())
	}
	if filter.Kind != nil {
		stmt += " AND kind = ?"
		args = append(args, *filter.Kind)
	}
	if filter.CallID != nil {
		stmt += " AND callID = ?"
		args = append(args, *filter.CallID)
	}
	stmt, args = orderAndLimit(stmt, args, filter.Order, filter.Options)

	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instructions := []*Instruction{}
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			in        Instruction
			seq       int64
			contract  []byte
			owner     []byte
			recipient []byte
			amount    sql.NullString
			denom     sql.NullString
			tokenID   sql.NullString
		)
		if err := rows.Scan(&in.CallID, &seq, &in.BlockTime, &in.Kind, &contract, &owner, &recipient, &amount, &denom, &tokenID); err != nil {
			return nil, err
		}
		in.Index = sequence(seq).Index()
		in.Contract = optionalAddress(contract)
		in.Owner = optionalAddress(owner)
		in.Recipient = thor.BytesToAddress(recipient)
		in.Denom = denom.String
		in.TokenID = tokenID.String
		if amount.Valid && amount.String != "" {
			v, err := uint256.FromDecimal(amount.String)
			if err != nil {
				return nil, errors.Wrap(err, "decode amount")
			}
			in.Amount = v
		}
		instructions = append(instructions, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return instructions, nil
}

func rangeClause(stmt string, args []any, r *Range) (string, []any) {
	stmt += " AND blockTime >= ?"
	args = append(args, r.From)
	if r.To >= r.From {
		stmt += " AND blockTime <= ?"
		args = append(args, r.To)
	}
	return stmt, args
}

func orderAndLimit(stmt string, args []any, order Order, options *Options) (string, []any) {
	if order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, options.Offset, options.Limit)
	}
	return stmt, args
}

func optionalAddress(b []byte) *thor.Address {
	if len(b) == 0 {
		return nil
	}
	addr := thor.BytesToAddress(b)
	return &addr
}

func addressValue(addr *thor.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

// CallBatch collects the rows of one committed call.
type CallBatch struct {
	db           *LogDB
	callID       string
	caller       thor.Address
	blockTime    uint64
	events       []*Event
	instructions []*Instruction
}

// Insert appends the output of a call. It may be called several times before Commit.
func (b *CallBatch) Insert(resp *staking.Response) *CallBatch {
	if resp == nil {
		return b
	}
	for i := range resp.Events {
		b.events = append(b.events, newEvent(b, uint32(len(b.events)), &resp.Events[i]))
	}
	for i := range resp.Instructions {
		b.instructions = append(b.instructions, newInstruction(b, uint32(len(b.instructions)), &resp.Instructions[i]))
	}
	return b
}

func (b *CallBatch) Len() int {
	return len(b.events) + len(b.instructions)
}

func (b *CallBatch) Commit() error {
	if b.Len() == 0 {
		return nil
	}

	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	callNum := b.db.callNum + 1
	if err := b.db.execInTx(func(tx *sql.Tx) error {
		for _, ev := range b.events {
			var (
				attrs []byte
				err   error
			)
			if len(ev.Attrs) > 0 {
				if attrs, err = json.Marshal(ev.Attrs); err != nil {
					return err
				}
			}
			if _, err := tx.Stmt(b.db.stmts.insertEvent).Exec(
				newSequence(callNum, ev.Index),
				ev.CallID,
				ev.BlockTime,
				ev.Caller.Bytes(),
				ev.Type,
				ev.TokenID,
				string(attrs),
			); err != nil {
				return err
			}
		}
		for _, in := range b.instructions {
			var amount string
			if in.Amount != nil {
				amount = in.Amount.Dec()
			}
			if _, err := tx.Stmt(b.db.stmts.insertInstruction).Exec(
				newSequence(callNum, in.Index),
				in.CallID,
				in.BlockTime,
				in.Kind,
				addressValue(in.Contract),
				addressValue(in.Owner),
				in.Recipient.Bytes(),
				amount,
				in.Denom,
				in.TokenID,
			); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	b.db.callNum = callNum
	metricRowsInserted().AddWithLabel(int64(len(b.events)), map[string]string{"type": "event"})
	metricRowsInserted().AddWithLabel(int64(len(b.instructions)), map[string]string{"type": "instruction"})
	return nil
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
