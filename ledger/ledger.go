// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger serializes calls against the world state. Calls run one
// at a time; each one is committed to the store together with its receipt
// before the next starts.
package ledger

import (
	"bytes"
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/builtin/faucet"
	"github.com/vechain/faucet/builtin/reverts"
	"github.com/vechain/faucet/genesis"
	"github.com/vechain/faucet/kv"
	"github.com/vechain/faucet/log"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/runtime"
	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

const (
	receiptBucket = kv.Bucket("r")
	metaBucket    = kv.Bucket("m")

	receiptCacheSize = 1024
)

var (
	genesisKey = []byte("genesis")
	callsKey   = []byte("calls")

	logger = log.WithContext("pkg", "ledger")

	// ErrNotFound is returned for unknown receipts.
	ErrNotFound = errors.New("not found")
	// ErrGenesisMismatch is returned when the store was created with another genesis.
	ErrGenesisMismatch = errors.New("genesis mismatch")
)

// FaucetInfo is the public view of a faucet.
type FaucetInfo struct {
	Address thor.Address
	Owner   thor.Address
	Balance *big.Int
	Active  bool
}

// Ledger is the single writer of the world state.
type Ledger struct {
	mu       sync.Mutex
	db       kv.Store
	receipts kv.Store
	meta     kv.Store
	logDB    *logdb.LogDB
	genesis  *genesis.Genesis
	state    *state.State
	rt       *runtime.Runtime
	cache    *lru.Cache
	calls    uint64
	now      func() time.Time
}

// New opens a ledger on db, applying the genesis allocation on first open.
func New(db kv.Store, logDB *logdb.LogDB, gen *genesis.Genesis, minGasPrice *big.Int) (*Ledger, error) {
	cache, _ := lru.New(receiptCacheSize)
	st := state.New(db)
	l := &Ledger{
		db:       db,
		receipts: receiptBucket.NewStore(db),
		meta:     metaBucket.NewStore(db),
		logDB:    logDB,
		genesis:  gen,
		state:    st,
		rt:       runtime.New(st, minGasPrice),
		cache:    cache,
		now:      time.Now,
	}
	if err := l.init(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) init() error {
	stored, err := l.meta.Get(genesisKey)
	if err != nil {
		if !l.meta.IsNotFound(err) {
			return errors.Wrap(err, "read genesis id")
		}
		if err := l.genesis.Apply(l.state); err != nil {
			return err
		}
		id := l.genesis.ID()
		if err := l.state.CommitWith(func(bulk kv.Bulk) error {
			return metaBucket.NewBulk(bulk).Put(genesisKey, id.Bytes())
		}); err != nil {
			return errors.Wrap(err, "commit genesis")
		}
		logger.Info("genesis initialized", "name", l.genesis.Name(), "id", id)
		return nil
	}

	if !bytes.Equal(stored, l.genesis.ID().Bytes()) {
		return errors.WithMessagef(ErrGenesisMismatch, "stored %v, want %v", thor.BytesToBytes32(stored), l.genesis.ID())
	}
	if raw, err := l.meta.Get(callsKey); err == nil {
		if err := rlp.DecodeBytes(raw, &l.calls); err != nil {
			return errors.Wrap(err, "decode call count")
		}
	} else if !l.meta.IsNotFound(err) {
		return err
	}
	logger.Info("ledger opened", "genesis", l.genesis.ID(), "calls", l.calls)
	return nil
}

// Genesis returns the genesis the ledger was created with.
func (l *Ledger) Genesis() *genesis.Genesis {
	return l.genesis
}

// LogDB returns the transfer log db.
func (l *Ledger) LogDB() *logdb.LogDB {
	return l.logDB
}

// Calls returns the number of calls executed, reverted ones included.
func (l *Ledger) Calls() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// Execute runs call and commits its outcome. Rejected calls return an error
// and change nothing; reverted calls return a receipt.
func (l *Ledger) Execute(ctx context.Context, call *tx.Call) (*tx.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := methodLabel(call)
	checkpoint := l.state.NewCheckpoint()
	receipt, err := l.rt.ExecuteCall(call)
	if err != nil {
		l.state.RevertTo(checkpoint)
		status := "error"
		if runtime.IsRejected(err) {
			status = "rejected"
		}
		metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": status})
		return nil, err
	}

	data, err := rlp.EncodeToBytes(receipt)
	if err != nil {
		l.state.RevertTo(checkpoint)
		return nil, err
	}
	calls := l.calls + 1
	if err := l.state.CommitWith(func(bulk kv.Bulk) error {
		if err := receiptBucket.NewBulk(bulk).Put(receipt.CallID.Bytes(), data); err != nil {
			return err
		}
		raw, err := rlp.EncodeToBytes(calls)
		if err != nil {
			return err
		}
		return metaBucket.NewBulk(bulk).Put(callsKey, raw)
	}); err != nil {
		l.state.RevertTo(checkpoint)
		return nil, errors.Wrap(err, "commit call")
	}
	l.calls = calls
	l.cache.Add(receipt.CallID, receipt)

	// the call is durable now, so the log must not be lost to a caller giving up
	if err := l.logDB.Insert(context.WithoutCancel(ctx), receipt.CallID, receipt.Origin, uint64(l.now().Unix()), receipt.Transfers); err != nil {
		logger.Warn("failed to write transfer logs", "id", receipt.CallID, "err", err)
	}

	status := "success"
	if receipt.Reverted {
		status = "reverted"
	}
	metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": status})
	metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": method})
	metricGasUsed().Add(int64(receipt.GasUsed))
	metricCallGas().Observe(int64(receipt.GasUsed))
	metricCalls().Set(int64(calls))

	logger.Debug("call committed",
		"id", receipt.CallID,
		"origin", receipt.Origin,
		"contract", receipt.Contract,
		"method", method,
		"gasUsed", receipt.GasUsed,
		"reverted", receipt.Reverted,
		"reason", receipt.RevertReason,
	)
	return receipt, nil
}

// Receipt returns the receipt of an executed call.
func (l *Ledger) Receipt(id thor.Bytes32) (*tx.Receipt, error) {
	if cached, ok := l.cache.Get(id); ok {
		metricReceiptCache().AddWithLabel(1, map[string]string{"result": "hit"})
		return cached.(*tx.Receipt), nil
	}
	metricReceiptCache().AddWithLabel(1, map[string]string{"result": "miss"})
	data, err := l.receipts.Get(id.Bytes())
	if err != nil {
		if l.receipts.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var receipt tx.Receipt
	if err := rlp.DecodeBytes(data, &receipt); err != nil {
		return nil, err
	}
	if receipt.Reverted {
		receipt.RevertReason, _ = reverts.DecodeReason(receipt.RevertData)
	}
	l.cache.Add(id, &receipt)
	return &receipt, nil
}

// Balance returns the balance of addr.
func (l *Ledger) Balance(addr thor.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.GetBalance(addr)
}

// Nonce returns the nonce the next call from addr must carry.
func (l *Ledger) Nonce(addr thor.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.GetNonce(addr)
}

// Faucet returns the faucet deployed at addr, or faucet.ErrNotFound.
func (l *Ledger) Faucet(addr thor.Address) (*FaucetInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := faucet.New(addr, l.state, nil)
	owner, err := f.Owner()
	if err != nil {
		return nil, err
	}
	active, err := f.Active()
	if err != nil {
		return nil, err
	}
	balance, err := f.Balance()
	if err != nil {
		return nil, err
	}
	return &FaucetInfo{
		Address: addr,
		Owner:   owner,
		Balance: balance,
		Active:  active,
	}, nil
}

// methodLabel names the call for metrics. Methods the faucet does not know
// share one label.
func methodLabel(call *tx.Call) string {
	if call.IsDeploy() {
		return "deploy"
	}
	switch call.Method() {
	case faucet.MethodReceive:
		return "receive"
	case faucet.MethodWithdraw, faucet.MethodWithdrawAll, faucet.MethodDestroy:
		return call.Method()
	default:
		return "unknown"
	}
}
