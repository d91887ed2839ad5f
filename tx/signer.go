// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// MustSign signs a call using the provided private key.
// It panics if the signing process fails.
func MustSign(call *Call, pk *ecdsa.PrivateKey) *Call {
	signed, err := Sign(call, pk)
	if err != nil {
		panic(err)
	}
	return signed
}

// Sign signs a call using the provided private key.
func Sign(call *Call, pk *ecdsa.PrivateKey) (*Call, error) {
	sig, err := crypto.Sign(call.SigningHash().Bytes(), pk)
	if err != nil {
		return nil, fmt.Errorf("unable to sign call: %w", err)
	}
	return call.WithSignature(sig), nil
}
