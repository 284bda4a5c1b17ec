// Copyright (c) 2020 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"

	"github.com/pkg/errors"
)

const (
	insertEventQuery       = "INSERT INTO event(seq, callID, blockTime, caller, type, tokenID, attrs) VALUES(?,?,?,?,?,?,?)"
	insertInstructionQuery = "INSERT INTO instruction(seq, callID, blockTime, kind, contract, owner, recipient, amount, denom, tokenID) VALUES(?,?,?,?,?,?,?,?,?,?)"
)

// statements are prepared once at open. A transaction may hold the only
// connection, so nothing is prepared while one runs.
type statements struct {
	insertEvent       *sql.Stmt
	insertInstruction *sql.Stmt
}

func prepareStatements(db *sql.DB) (*statements, error) {
	var (
		s   statements
		err error
	)
	if s.insertEvent, err = db.Prepare(insertEventQuery); err != nil {
		return nil, errors.Wrap(err, "prepare event insert")
	}
	if s.insertInstruction, err = db.Prepare(insertInstructionQuery); err != nil {
		s.insertEvent.Close()
		return nil, errors.Wrap(err, "prepare instruction insert")
	}
	return &s, nil
}

func (s *statements) Close() error {
	err := s.insertEvent.Close()
	if err2 := s.insertInstruction.Close(); err == nil {
		err = err2
	}
	return err
}
