// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/faucet/builtin/reverts"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

func TestBuilder(t *testing.T) {
	to := thor.BytesToAddress([]byte("faucet"))
	call := tx.NewBuilder().
		To(to).
		Method("withdraw").
		Amount(big.NewInt(100)).
		Gas(50000).
		Nonce(3).
		Build()

	assert.Equal(t, &to, call.To())
	assert.False(t, call.IsDeploy())
	assert.Equal(t, "withdraw", call.Method())
	assert.Equal(t, big.NewInt(100), call.Amount())
	assert.Equal(t, 0, call.Value().Sign())
	assert.Equal(t, uint64(50000), call.Gas())
	assert.Equal(t, thor.InitialGasPrice, call.GasPrice())
	assert.Equal(t, uint64(3), call.Nonce())
	assert.Equal(t, thor.IntrinsicGas, call.IntrinsicGas())

	deploy := tx.NewBuilder().Build()
	assert.True(t, deploy.IsDeploy())
	assert.Nil(t, deploy.To())
}

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	call := tx.NewBuilder().Value(thor.Ether).Gas(50000).Build()
	_, err = call.Origin()
	assert.Equal(t, tx.ErrUnsigned, err)
	_, err = call.ID()
	assert.Error(t, err)

	signed := tx.MustSign(call, key)
	assert.Equal(t, call.SigningHash(), signed.SigningHash())

	origin, err := signed.Origin()
	require.NoError(t, err)
	assert.Equal(t, thor.Address(crypto.PubkeyToAddress(key.PublicKey)), origin)

	id, err := signed.ID()
	require.NoError(t, err)
	assert.Equal(t, thor.Blake2b(signed.SigningHash().Bytes(), origin.Bytes()), id)

	bad := signed.WithSignature([]byte{1, 2, 3})
	_, err = bad.Origin()
	assert.Error(t, err)
}

func TestSigningHashCoversBody(t *testing.T) {
	a := tx.NewBuilder().Method("withdraw").Amount(big.NewInt(1)).Build()
	b := tx.NewBuilder().Method("withdraw").Amount(big.NewInt(2)).Build()
	c := tx.NewBuilder().Method("withdraw").Amount(big.NewInt(1)).Nonce(1).Build()

	assert.NotEqual(t, a.SigningHash(), b.SigningHash())
	assert.NotEqual(t, a.SigningHash(), c.SigningHash())
}

func TestEncodeDecode(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	to := thor.BytesToAddress([]byte("faucet"))
	call := tx.MustSign(tx.NewBuilder().
		To(to).
		Method("withdrawAll").
		Gas(60000).
		GasPrice(big.NewInt(7)).
		Nonce(9).
		Build(), key)

	raw, err := call.MarshalBinary()
	require.NoError(t, err)

	decoded, err := tx.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, &to, decoded.To())
	assert.Equal(t, "withdrawAll", decoded.Method())
	assert.Equal(t, uint64(60000), decoded.Gas())
	assert.Equal(t, big.NewInt(7), decoded.GasPrice())
	assert.Equal(t, uint64(9), decoded.Nonce())
	assert.Equal(t, call.Signature(), decoded.Signature())
	assert.Equal(t, call.SigningHash(), decoded.SigningHash())

	id1, _ := call.ID()
	id2, _ := decoded.ID()
	assert.Equal(t, id1, id2)

	deploy := tx.NewBuilder().Build()
	raw, err = rlp.EncodeToBytes(deploy)
	require.NoError(t, err)
	decoded, err = tx.Decode(raw)
	require.NoError(t, err)
	assert.True(t, decoded.IsDeploy())

	_, err = tx.Decode([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestReceiptRLP(t *testing.T) {
	r := &tx.Receipt{
		CallID:       thor.Blake2b([]byte("id")),
		Origin:       thor.BytesToAddress([]byte("origin")),
		Contract:     thor.BytesToAddress([]byte("faucet")),
		Method:       "withdraw",
		GasUsed:      21200,
		Paid:         big.NewInt(21200),
		Reverted:     true,
		RevertReason: "Cannot withdraw more than 0.1 ETH",
		RevertData:   reverts.New("Cannot withdraw more than 0.1 ETH").Bytes(),
		Transfers: tx.Transfers{{
			Sender:    thor.BytesToAddress([]byte("a")),
			Recipient: thor.BytesToAddress([]byte("b")),
			Amount:    big.NewInt(5),
		}},
	}
	data, err := rlp.EncodeToBytes(r)
	require.NoError(t, err)

	var decoded tx.Receipt
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Empty(t, decoded.RevertReason)
	decoded.RevertReason = r.RevertReason
	assert.Equal(t, r, &decoded)
}
