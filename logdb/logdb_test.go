// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

var (
	faucetAddr = thor.BytesToAddress([]byte("faucet"))
	alice      = thor.BytesToAddress([]byte("alice"))
	bob        = thor.BytesToAddress([]byte("bob"))
)

func newDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Insert(ctx, thor.Blake2b([]byte("c1")), alice, 100, tx.Transfers{
		{Sender: alice, Recipient: faucetAddr, Amount: thor.Ether},
	}))
	require.NoError(t, db.Insert(ctx, thor.Blake2b([]byte("c2")), bob, 101, tx.Transfers{
		{Sender: faucetAddr, Recipient: bob, Amount: big.NewInt(100)},
		{Sender: faucetAddr, Recipient: alice, Amount: big.NewInt(200)},
	}))
	require.NoError(t, db.Insert(ctx, thor.Blake2b([]byte("c3")), bob, 102, nil))
	return db
}

func TestFilterAll(t *testing.T) {
	db := newDB(t)

	all, err := db.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, &logdb.Transfer{
		Seq:        1,
		CallID:     thor.Blake2b([]byte("c1")),
		CallOrigin: alice,
		Timestamp:  100,
		Index:      0,
		Sender:     alice,
		Recipient:  faucetAddr,
		Amount:     thor.Ether,
	}, all[0])
	assert.Equal(t, uint32(1), all[2].Index)
	assert.Equal(t, big.NewInt(200), all[2].Amount)
}

func TestFilterCriteria(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter *logdb.TransferFilter
		want   []uint64
	}{
		{"by address", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Address: &alice}}}, []uint64{1, 3}},
		{"by sender", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Sender: &faucetAddr}}}, []uint64{2, 3}},
		{"by recipient", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Recipient: &bob}}}, []uint64{2}},
		{"by origin", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{CallOrigin: &bob}}}, []uint64{2, 3}},
		{"any criteria", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Recipient: &bob}, {Sender: &alice}}}, []uint64{1, 2}},
		{"both fields", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Sender: &faucetAddr, Recipient: &alice}}}, []uint64{3}},
		{"desc", &logdb.TransferFilter{Order: logdb.DESC}, []uint64{3, 2, 1}},
		{"paged", &logdb.TransferFilter{Options: &logdb.Options{Offset: 1, Limit: 1}}, []uint64{2}},
		{"by call", &logdb.TransferFilter{CallID: ptr(thor.Blake2b([]byte("c2")))}, []uint64{2, 3}},
		{"no match", &logdb.TransferFilter{CriteriaSet: []*logdb.TransferCriteria{{Sender: &bob}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := db.FilterTransfers(ctx, tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, tr := range transfers {
				seqs = append(seqs, tr.Seq)
			}
			assert.Equal(t, tt.want, seqs)
		})
	}
}

func TestPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())

	require.NoError(t, db.Insert(context.Background(), thor.Blake2b([]byte("c1")), alice, 1, tx.Transfers{
		{Sender: alice, Recipient: bob, Amount: big.NewInt(1)},
	}))
	require.NoError(t, db.Close())

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	all, err := db.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCanceled(t *testing.T) {
	db := newDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.FilterTransfers(ctx, nil)
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
