// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package faucet

import "github.com/vechain/faucet/builtin/reverts"

var (
	ErrLimitExceeded       = reverts.New("Cannot withdraw more than 0.1 ETH")
	ErrUnauthorized        = reverts.New("Only the owner can call this function")
	ErrInactive            = reverts.New("Faucet is no longer active")
	ErrInsufficientBalance = reverts.New("Insufficient faucet balance")
	ErrNotPayable          = reverts.New("Function is not payable")
	ErrAlreadyDeployed     = reverts.New("Faucet already deployed")
	ErrNotFound            = reverts.New("Faucet not found")
	ErrUnknownMethod       = reverts.New("Unknown method")
)
