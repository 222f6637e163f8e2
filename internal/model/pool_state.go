package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MaxFeeBps is the upper bound for a pool trading fee (1000 = 10%).
const MaxFeeBps = 1000

// FeeDenominator converts basis points into a fraction.
const FeeDenominator = 10000

// PoolState is the structured pool datum carried by the pool output.
type PoolState struct {
	AssetA      AssetID
	AssetB      AssetID
	ReserveA    *big.Int
	ReserveB    *big.Int
	FeeBps      int64
	Owner       common.Address
	PriceOracle *common.Hash
}

// SameIdentity reports whether the fields that never change across swaps
// and liquidity moves are equal: assets, fee, owner, and oracle.
func (p PoolState) SameIdentity(o PoolState) bool {
	return p.SameAssets(o) &&
		p.FeeBps == o.FeeBps &&
		p.Owner == o.Owner &&
		sameOracle(p.PriceOracle, o.PriceOracle)
}

// SameAssets reports whether both asset identifiers match.
func (p PoolState) SameAssets(o PoolState) bool {
	return p.AssetA.Equal(o.AssetA) && p.AssetB.Equal(o.AssetB)
}

func sameOracle(a, b *common.Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
