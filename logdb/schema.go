// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for value transfers
const transferTableSchema = `
CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	callID BLOB(32) NOT NULL,
	callOrigin BLOB(20) NOT NULL,
	timestamp INTEGER NOT NULL,
	transferIndex INTEGER NOT NULL,
	sender BLOB(20) NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount BLOB(32) NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS transferCallIndex ON transfer(callID, transferIndex);
CREATE INDEX IF NOT EXISTS transferSenderIndex ON transfer(sender);
CREATE INDEX IF NOT EXISTS transferRecipientIndex ON transfer(recipient);
CREATE INDEX IF NOT EXISTS transferOriginIndex ON transfer(callOrigin);
`
