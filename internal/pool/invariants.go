package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/model"
)

var one = big.NewInt(1)

// SwapFee computes the fee charged on the input leg of a swap:
// amountIn * feeBps / 10000 with truncating division. Truncation rounds
// in the protocol's favor, never the trader's.
func SwapFee(amountIn *big.Int, feeBps int64) *big.Int {
	if amountIn == nil || amountIn.Sign() <= 0 || feeBps <= 0 {
		return big.NewInt(0)
	}
	fee := new(big.Int).Mul(amountIn, big.NewInt(feeBps))
	return fee.Div(fee, big.NewInt(model.FeeDenominator))
}

// swapOK validates one continuation candidate for a swap. The exact-output
// flag only selects which leg the trader fixed; the arithmetic is symmetric.
func swapOK(old, next model.PoolState) bool {
	if !old.SameIdentity(next) {
		return false
	}

	deltaA := new(big.Int).Sub(next.ReserveA, old.ReserveA)
	deltaB := new(big.Int).Sub(next.ReserveB, old.ReserveB)

	// Exactly one reserve must grow and the other shrink. Both legs are
	// therefore strictly non-zero.
	if deltaA.Sign() == 0 || deltaB.Sign() == 0 {
		return false
	}
	if deltaA.Sign() == deltaB.Sign() {
		return false
	}

	// Constant product may only hold or increase. The fee makes it strictly
	// increase for any non-zero trade; a zero-fee balanced swap that leaves
	// the product unchanged is still admissible.
	oldProduct := new(big.Int).Mul(old.ReserveA, old.ReserveB)
	newProduct := new(big.Int).Mul(next.ReserveA, next.ReserveB)
	return newProduct.Cmp(oldProduct) >= 0
}

// addLiquidityOK validates one continuation candidate for a deposit.
func addLiquidityOK(old, next model.PoolState) bool {
	if !old.SameIdentity(next) {
		return false
	}

	deltaA := new(big.Int).Sub(next.ReserveA, old.ReserveA)
	deltaB := new(big.Int).Sub(next.ReserveB, old.ReserveB)
	if deltaA.Sign() <= 0 || deltaB.Sign() <= 0 {
		return false
	}

	// Bootstrap: an empty pool accepts any positive ratio.
	if old.ReserveA.Sign() == 0 && old.ReserveB.Sign() == 0 {
		return true
	}

	return ratioWithinSlack(deltaA, deltaB, old)
}

// removeLiquidityOK validates one continuation candidate for a withdrawal.
func removeLiquidityOK(old, next model.PoolState) bool {
	if !old.SameIdentity(next) {
		return false
	}

	deltaA := new(big.Int).Sub(next.ReserveA, old.ReserveA)
	deltaB := new(big.Int).Sub(next.ReserveB, old.ReserveB)
	if deltaA.Sign() >= 0 || deltaB.Sign() >= 0 {
		return false
	}

	return ratioWithinSlack(deltaA.Abs(deltaA), deltaB.Abs(deltaB), old)
}

// ratioWithinSlack checks proportionality by cross-multiplication, which
// avoids division entirely: |deltaB*oldA - deltaA*oldB| <= 1. Integer
// ratios cannot in general match exactly, hence one unit of slack.
func ratioWithinSlack(deltaA, deltaB *big.Int, old model.PoolState) bool {
	cross1 := new(big.Int).Mul(deltaB, old.ReserveA)
	cross2 := new(big.Int).Mul(deltaA, old.ReserveB)
	diff := cross1.Sub(cross1, cross2)
	return diff.Abs(diff).Cmp(one) <= 0
}

// updateSettingsOK validates one continuation candidate for a settings
// change: only fee and oracle may move, and they must land exactly on the
// proposed values.
func updateSettingsOK(old, next model.PoolState, newFeeBps int64, newOracle *common.Hash) bool {
	if !old.SameAssets(next) {
		return false
	}
	if old.Owner != next.Owner {
		return false
	}
	if old.ReserveA.Cmp(next.ReserveA) != 0 || old.ReserveB.Cmp(next.ReserveB) != 0 {
		return false
	}
	if next.FeeBps != newFeeBps {
		return false
	}
	return sameOracleHash(next.PriceOracle, newOracle)
}

func sameOracleHash(a, b *common.Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
