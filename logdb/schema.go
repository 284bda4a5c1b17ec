// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// seq orders rows across calls, see sequence.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	callID TEXT NOT NULL,
	blockTime INTEGER NOT NULL,
	caller BLOB(20) NOT NULL,
	type TEXT NOT NULL,
	tokenID TEXT,
	attrs TEXT
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(tokenID, seq);
CREATE INDEX IF NOT EXISTS event_i1 ON event(type, seq);
CREATE INDEX IF NOT EXISTS event_i2 ON event(blockTime);
CREATE INDEX IF NOT EXISTS event_i3 ON event(callID);`

const instructionTableSchema = `CREATE TABLE IF NOT EXISTS instruction (
	seq INTEGER PRIMARY KEY NOT NULL,
	callID TEXT NOT NULL,
	blockTime INTEGER NOT NULL,
	kind TEXT NOT NULL,
	contract BLOB(20),
	owner BLOB(20),
	recipient BLOB(20) NOT NULL,
	amount TEXT,
	denom TEXT,
	tokenID TEXT
);

CREATE INDEX IF NOT EXISTS instruction_i0 ON instruction(recipient, seq);
CREATE INDEX IF NOT EXISTS instruction_i1 ON instruction(callID);`
