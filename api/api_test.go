// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/faucet/api"
	"github.com/vechain/faucet/api/accounts"
	"github.com/vechain/faucet/api/calls"
	"github.com/vechain/faucet/api/faucets"
	"github.com/vechain/faucet/api/node"
	"github.com/vechain/faucet/api/transfers"
	"github.com/vechain/faucet/builtin/reverts"
	"github.com/vechain/faucet/genesis"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/log"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/lvldb"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

var (
	owner        = genesis.DevAccounts()[0]
	otherAccount = genesis.DevAccounts()[1]
)

type testServer struct {
	t      *testing.T
	ledger *ledger.Ledger
	ts     *httptest.Server
}

func newTestServer(t *testing.T, opts api.Options) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	l, err := ledger.New(db, logDB, genesis.NewDevnet(), thor.InitialGasPrice)
	require.NoError(t, err)

	ts := httptest.NewServer(api.New(l, opts))
	t.Cleanup(func() {
		ts.Close()
		logDB.Close()
		db.Close()
	})
	return &testServer{t, l, ts}
}

func (s *testServer) request(method, path string, body any) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, reader)
	require.NoError(s.t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	return res, data
}

func (s *testServer) get(path string, v any) int {
	res, data := s.request(http.MethodGet, path, nil)
	if res.StatusCode == http.StatusOK && v != nil {
		require.NoError(s.t, json.Unmarshal(data, v))
	}
	return res.StatusCode
}

func (s *testServer) send(acc genesis.DevAccount, b *tx.Builder) *calls.Receipt {
	nonce, err := s.ledger.Nonce(acc.Address)
	require.NoError(s.t, err)
	raw, err := tx.MustSign(b.Nonce(nonce).Gas(100000).Build(), acc.PrivateKey).MarshalBinary()
	require.NoError(s.t, err)

	res, data := s.request(http.MethodPost, "/calls", calls.RawCall{Raw: hexutil.Encode(raw)})
	require.Equal(s.t, http.StatusOK, res.StatusCode, string(data))

	var result calls.SendResult
	require.NoError(s.t, json.Unmarshal(data, &result))
	assert.Equal(s.t, result.ID, result.Receipt.CallID)
	return result.Receipt
}

func TestNodeStatus(t *testing.T) {
	s := newTestServer(t, api.Options{AllowedOrigins: "*"})

	res, data := s.request(http.MethodGet, "/node/status", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, genesis.NewDevnet().ID().String(), res.Header.Get("x-genesis-id"))

	var status node.Status
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, "devnet", status.GenesisName)
	assert.Equal(t, uint64(0), status.Calls)
}

func TestGetAccount(t *testing.T) {
	s := newTestServer(t, api.Options{})

	var acc accounts.Account
	require.Equal(t, http.StatusOK, s.get("/accounts/"+owner.Address.String(), &acc))
	assert.Equal(t, genesis.DevAccountBalance, (*big.Int)(acc.Balance))
	assert.Equal(t, uint64(0), acc.Nonce)

	assert.Equal(t, http.StatusBadRequest, s.get("/accounts/0xbad", nil))
}

func TestFaucetFlow(t *testing.T) {
	s := newTestServer(t, api.Options{LogsLimit: 10})

	deploy := s.send(owner, tx.NewBuilder())
	require.False(t, deploy.Reverted, deploy.RevertReason)
	addr := deploy.Contract

	var f faucets.Faucet
	require.Equal(t, http.StatusOK, s.get("/faucets/"+addr.String(), &f))
	assert.Equal(t, owner.Address, f.Owner)
	assert.True(t, f.Active)

	deposit := s.send(owner, tx.NewBuilder().To(addr).Value(thor.Ether))
	require.False(t, deposit.Reverted, deposit.RevertReason)

	withdraw := s.send(otherAccount, tx.NewBuilder().To(addr).Method("withdraw").Amount(thor.MustParseEther("0.1")))
	require.False(t, withdraw.Reverted, withdraw.RevertReason)
	require.Len(t, withdraw.Transfers, 1)
	assert.Equal(t, otherAccount.Address, withdraw.Transfers[0].Recipient)

	tooMuch := s.send(otherAccount, tx.NewBuilder().To(addr).Method("withdraw").Amount(thor.MustParseEther("0.2")))
	assert.True(t, tooMuch.Reverted)
	assert.Equal(t, "Cannot withdraw more than 0.1 ETH", tooMuch.RevertReason)
	assert.Empty(t, tooMuch.Transfers)
	reason, ok := reverts.DecodeReason(tooMuch.RevertData)
	assert.True(t, ok)
	assert.Equal(t, tooMuch.RevertReason, reason)

	require.Equal(t, http.StatusOK, s.get("/faucets/"+addr.String(), &f))
	assert.Equal(t, thor.MustParseEther("0.9"), (*big.Int)(f.Balance))

	var receipt calls.Receipt
	require.Equal(t, http.StatusOK, s.get("/calls/"+withdraw.CallID.String()+"/receipt", &receipt))
	assert.Equal(t, withdraw.GasUsed, receipt.GasUsed)
	assert.Equal(t, "withdraw", receipt.Method)

	var logs []*transfers.FilteredTransfer
	require.Equal(t, http.StatusOK, s.get("/logs/transfers?address="+addr.String(), &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, deposit.CallID, logs[0].Meta.CallID)
	assert.Equal(t, withdraw.CallID, logs[1].Meta.CallID)

	require.Equal(t, http.StatusOK, s.get("/logs/transfers?address="+addr.String()+"&order=desc&limit=1", &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, withdraw.CallID, logs[0].Meta.CallID)

	var status node.Status
	require.Equal(t, http.StatusOK, s.get("/node/status", &status))
	assert.Equal(t, uint64(4), status.Calls)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, api.Options{})

	assert.Equal(t, http.StatusNotFound, s.get("/faucets/"+otherAccount.Address.String(), nil))
	assert.Equal(t, http.StatusNotFound, s.get("/calls/"+thor.Bytes32{1}.String()+"/receipt", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/calls/0x01/receipt", nil))
}

func TestRejectedCall(t *testing.T) {
	s := newTestServer(t, api.Options{})

	tests := []struct {
		name string
		body any
	}{
		{"bad hex", calls.RawCall{Raw: "0xzz"}},
		{"bad rlp", calls.RawCall{Raw: "0x0102"}},
		{"unknown field", map[string]string{"raw": "0x", "extra": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := s.request(http.MethodPost, "/calls", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}

	t.Run("bad nonce", func(t *testing.T) {
		raw, err := tx.MustSign(tx.NewBuilder().Nonce(7).Gas(100000).Build(), owner.PrivateKey).MarshalBinary()
		require.NoError(t, err)
		res, data := s.request(http.MethodPost, "/calls", calls.RawCall{Raw: hexutil.Encode(raw)})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, string(data), "call rejected")
	})

	var status node.Status
	require.Equal(t, http.StatusOK, s.get("/node/status", &status))
	assert.Equal(t, uint64(0), status.Calls)
}

func TestTransfersLimit(t *testing.T) {
	s := newTestServer(t, api.Options{LogsLimit: 5})

	assert.Equal(t, http.StatusForbidden, s.get("/logs/transfers?limit=6", nil))
	assert.Equal(t, http.StatusOK, s.get("/logs/transfers?limit=5", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/logs/transfers?order=up", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/logs/transfers?offset=-1", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/logs/transfers?offset=18446744073709551615", nil))
	assert.Equal(t, http.StatusOK, s.get("/logs/transfers?offset=9223372036854775807", nil))
}

func TestRequestLogger(t *testing.T) {
	var got string
	handler := api.RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got = string(data)
		w.WriteHeader(http.StatusAccepted)
	}), log.WithContext("pkg", "api_test"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("test body")))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "test body", got)
}
