// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/faucet/builtin/faucet"
	"github.com/vechain/faucet/builtin/gascharger"
	"github.com/vechain/faucet/builtin/reverts"
	"github.com/vechain/faucet/log"
	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

var logger = log.WithContext("pkg", "runtime")

// ErrOutOfGas reverts a call whose operations cost more than its gas provision.
var ErrOutOfGas = reverts.New("out of gas")

// Runtime executes calls against a state.
type Runtime struct {
	state       *state.State
	minGasPrice *big.Int
}

// New create a Runtime object.
func New(state *state.State, minGasPrice *big.Int) *Runtime {
	return &Runtime{
		state:       state,
		minGasPrice: minGasPrice,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }

// ExecuteCall executes a signed call.
// A rejected call returns a *RejectedError and leaves the state untouched.
// A reverted call still consumes its nonce and pays for the gas used.
// Any other error means the state is unusable and must be discarded.
func (rt *Runtime) ExecuteCall(call *tx.Call) (*tx.Receipt, error) {
	resolved, err := ResolveCall(call)
	if err != nil {
		return nil, err
	}

	nonce, err := rt.state.GetNonce(resolved.Origin)
	if err != nil {
		return nil, err
	}
	if call.Nonce() != nonce {
		return nil, errors.WithMessagef(ErrBadNonce, "want %d, got %d", nonce, call.Nonce())
	}

	_, returnGas, err := resolved.BuyGas(rt.state, rt.minGasPrice)
	if err != nil {
		return nil, err
	}
	if err := rt.state.SetNonce(resolved.Origin, nonce+1); err != nil {
		return nil, err
	}

	checkpoint := rt.state.NewCheckpoint()
	charger := gascharger.New()

	contract, transfers, execErr := rt.dispatch(call, resolved.Origin, charger.Charge)
	if execErr != nil && !reverts.IsRevertErr(execErr) {
		return nil, execErr
	}

	gasUsed := resolved.IntrinsicGas + charger.TotalGas()
	if gasUsed > call.Gas() {
		gasUsed = call.Gas()
		execErr = ErrOutOfGas
	}

	receipt := &tx.Receipt{
		CallID:   resolved.ID,
		Origin:   resolved.Origin,
		Contract: contract,
		Method:   call.Method(),
		GasUsed:  gasUsed,
	}

	if execErr != nil {
		var revert *reverts.ErrRequire
		errors.As(execErr, &revert)
		rt.state.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.RevertReason = revert.Reason()
		receipt.RevertData = revert.Bytes()
	} else {
		receipt.Transfers = transfers
	}

	paid, err := returnGas(call.Gas() - gasUsed)
	if err != nil {
		return nil, err
	}
	receipt.Paid = paid

	logger.Debug("call executed",
		"id", resolved.ID,
		"method", call.Method(),
		"reverted", receipt.Reverted,
		"gas", charger.Breakdown(),
	)
	return receipt, nil
}

func (rt *Runtime) dispatch(call *tx.Call, origin thor.Address, charge func(uint64)) (thor.Address, tx.Transfers, error) {
	if call.IsDeploy() {
		addr := thor.CreateContractAddress(origin, call.Nonce())
		if call.Method() != "" {
			return addr, nil, faucet.ErrUnknownMethod
		}
		if call.Value().Sign() > 0 {
			return addr, nil, faucet.ErrNotPayable
		}
		f := faucet.New(addr, rt.state, charge)
		return addr, nil, f.Deploy(origin)
	}

	to := *call.To()
	f := faucet.New(to, rt.state, charge)
	if err := f.Invoke(call.Method(), origin, call.Value(), call.Amount()); err != nil {
		return to, nil, err
	}

	var transfers tx.Transfers
	for _, t := range f.Transfers() {
		transfers = append(transfers, &tx.Transfer{
			Sender:    t.Sender,
			Recipient: t.Recipient,
			Amount:    t.Amount,
		})
	}
	return to, transfers, nil
}
