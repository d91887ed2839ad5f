// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/thor"
)

var (
	// ErrUnsigned is returned when the origin of an unsigned call is requested.
	ErrUnsigned = errors.New("call is not signed")
)

// Call is an immutable signed call to the faucet ledger.
// A call with nil To deploys a new faucet.
type Call struct {
	body body

	cache struct {
		signingHash atomic.Pointer[thor.Bytes32]
		origin      atomic.Pointer[thor.Address]
		id          atomic.Pointer[thor.Bytes32]
	}
}

// body describes details of a call.
type body struct {
	To        *thor.Address `rlp:"nil"`
	Method    string
	Amount    *big.Int
	Value     *big.Int
	Gas       uint64
	GasPrice  *big.Int
	Nonce     uint64
	Signature []byte
}

// To returns the faucet address the call is sent to, nil for deployment.
func (c *Call) To() *thor.Address {
	if c.body.To == nil {
		return nil
	}
	cpy := *c.body.To
	return &cpy
}

// Method returns the faucet method name. Empty means receive.
func (c *Call) Method() string {
	return c.body.Method
}

// Amount returns the method argument, the amount to withdraw.
func (c *Call) Amount() *big.Int {
	return copyBig(c.body.Amount)
}

// Value returns the native value sent along with the call.
func (c *Call) Value() *big.Int {
	return copyBig(c.body.Value)
}

// Gas returns gas provision for this call.
func (c *Call) Gas() uint64 {
	return c.body.Gas
}

// GasPrice returns gas price.
func (c *Call) GasPrice() *big.Int {
	return copyBig(c.body.GasPrice)
}

// Nonce returns the nonce of the origin account this call consumes.
func (c *Call) Nonce() uint64 {
	return c.body.Nonce
}

// IsDeploy reports whether the call creates a new faucet.
func (c *Call) IsDeploy() bool {
	return c.body.To == nil
}

// Signature returns signature.
func (c *Call) Signature() []byte {
	return append([]byte(nil), c.body.Signature...)
}

// WithSignature create a new call with signature set.
func (c *Call) WithSignature(sig []byte) *Call {
	newCall := Call{
		body: c.body,
	}
	newCall.body.Signature = append([]byte(nil), sig...)
	return &newCall
}

// SigningHash returns hash of the call excluding signature.
func (c *Call) SigningHash() thor.Bytes32 {
	if cached := c.cache.signingHash.Load(); cached != nil {
		return *cached
	}
	h := thor.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			c.body.To,
			c.body.Method,
			c.body.Amount,
			c.body.Value,
			c.body.Gas,
			c.body.GasPrice,
			c.body.Nonce,
		})
	})
	c.cache.signingHash.Store(&h)
	return h
}

// Origin recovers the signer of the call.
func (c *Call) Origin() (thor.Address, error) {
	if cached := c.cache.origin.Load(); cached != nil {
		return *cached, nil
	}
	if len(c.body.Signature) == 0 {
		return thor.Address{}, ErrUnsigned
	}
	pub, err := crypto.SigToPub(c.SigningHash().Bytes(), c.body.Signature)
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "recover origin")
	}
	origin := thor.Address(crypto.PubkeyToAddress(*pub))
	c.cache.origin.Store(&origin)
	return origin, nil
}

// ID returns the call id, unique per origin and signed content.
func (c *Call) ID() (thor.Bytes32, error) {
	if cached := c.cache.id.Load(); cached != nil {
		return *cached, nil
	}
	origin, err := c.Origin()
	if err != nil {
		return thor.Bytes32{}, err
	}
	signingHash := c.SigningHash()
	id := thor.Blake2b(signingHash.Bytes(), origin.Bytes())
	c.cache.id.Store(&id)
	return id, nil
}

// IntrinsicGas returns the gas charged before any execution.
func (c *Call) IntrinsicGas() uint64 {
	return thor.IntrinsicGas
}

// EncodeRLP implements rlp.Encoder
func (c *Call) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &c.body)
}

// DecodeRLP implements rlp.Decoder
func (c *Call) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	c.body = body
	c.cache.signingHash.Store(nil)
	c.cache.origin.Store(nil)
	c.cache.id.Store(nil)
	return nil
}

// MarshalBinary returns the RLP encoding of the call.
func (c *Call) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(c)
}

// Decode parses a RLP encoded call.
func Decode(raw []byte) (*Call, error) {
	var c Call
	if err := rlp.DecodeBytes(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
