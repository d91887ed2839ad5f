// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// every connection to ":memory:" is a distinct database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert stores transfers made by a call.
func (db *LogDB) Insert(ctx context.Context, callID thor.Bytes32, origin thor.Address, timestamp uint64, transfers tx.Transfers) error {
	if len(transfers) == 0 {
		return nil
	}
	return db.execInTx(ctx, func(sqlTx *sql.Tx) error {
		for i, t := range transfers {
			if _, err := sqlTx.ExecContext(ctx,
				"INSERT OR REPLACE INTO transfer(callID, callOrigin, timestamp, transferIndex, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?);",
				callID.Bytes(),
				origin.Bytes(),
				timestamp,
				i,
				t.Sender.Bytes(),
				t.Recipient.Bytes(),
				t.Amount.Bytes(),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *LogDB) execInTx(ctx context.Context, proc func(*sql.Tx) error) error {
	sqlTx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := proc(sqlTx); err != nil {
		sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const selectAll = "SELECT seq, callID, callOrigin, timestamp, transferIndex, sender, recipient, amount FROM transfer"
	if filter == nil {
		return db.queryTransfers(ctx, selectAll+" ORDER BY seq ASC")
	}
	var args []any
	stmt := selectAll + " WHERE 1"
	if filter.CallID != nil {
		args = append(args, filter.CallID.Bytes())
		stmt += " AND callID = ? "
	}
	length := len(filter.CriteriaSet)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1 "
		} else {
			stmt += " OR ( 1 "
		}
		if criteria.CallOrigin != nil {
			args = append(args, criteria.CallOrigin.Bytes())
			stmt += " AND callOrigin = ? "
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ? "
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ? "
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes(), criteria.Address.Bytes())
			stmt += " AND (sender = ? OR recipient = ?) "
		}
		if i == length-1 {
			stmt += " )) "
		} else {
			stmt += " ) "
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       uint64
			callID    []byte
			origin    []byte
			timestamp uint64
			index     uint32
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(
			&seq,
			&callID,
			&origin,
			&timestamp,
			&index,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Seq:        seq,
			CallID:     thor.BytesToBytes32(callID),
			CallOrigin: thor.BytesToAddress(origin),
			Timestamp:  timestamp,
			Index:      index,
			Sender:     thor.BytesToAddress(sender),
			Recipient:  thor.BytesToAddress(recipient),
			Amount:     new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}
