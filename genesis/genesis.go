// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
)

// Genesis is the initial allocation of a ledger.
type Genesis struct {
	name   string
	id     thor.Bytes32
	allocs []alloc
}

type alloc struct {
	Address thor.Address
	Balance *big.Int
}

// Builder helper to build genesis.
type Builder struct {
	allocs []alloc
}

// Alloc pre-allocates balance to addr.
func (b *Builder) Alloc(addr thor.Address, balance *big.Int) *Builder {
	b.allocs = append(b.allocs, alloc{addr, new(big.Int).Set(balance)})
	return b
}

// Build computes the genesis id and returns the genesis.
func (b *Builder) Build(name string) *Genesis {
	allocs := append([]alloc(nil), b.allocs...)
	id := thor.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{name, allocs})
	})
	return &Genesis{name: name, id: id, allocs: allocs}
}

// ID returns the genesis id. Ledgers refuse to open a store created with a different one.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Apply writes the allocation into st.
func (g *Genesis) Apply(st *state.State) error {
	for _, a := range g.allocs {
		if err := st.SetBalance(a.Address, a.Balance); err != nil {
			return errors.Wrapf(err, "alloc %v", a.Address)
		}
	}
	return nil
}
