package pool

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/model"
)

// Evaluate is the validator entry point: it decides whether the transaction
// described by view may consume the pool input selfRef carrying old and
// replace it under the requested action. ownScript is passed explicitly;
// the validator never derives its own identity from ambient context.
//
// The decision is pure: identical inputs always yield an identical verdict.
func Evaluate(old model.PoolState, action model.Action, selfRef model.OutRef, ownScript common.Hash, view model.LedgerView) model.Verdict {
	if !hasInput(view, selfRef) {
		return model.Reject(model.ReasonStructuralMismatch, "own input not found")
	}

	switch action.Kind {
	case model.ActionSwap:
		return acceptAnyCandidate(old, ownScript, view, swapOK, "swap")

	case model.ActionAddLiquidity:
		return acceptAnyCandidate(old, ownScript, view, addLiquidityOK, "add liquidity")

	case model.ActionRemoveLiquidity:
		return acceptAnyCandidate(old, ownScript, view, removeLiquidityOK, "remove liquidity")

	case model.ActionUpdateSettings:
		return evaluateUpdateSettings(old, action, ownScript, view)

	default:
		return model.Reject(model.ReasonStructuralMismatch, fmt.Sprintf("unsupported action kind: %s", action.Kind))
	}
}

// acceptAnyCandidate applies pred to every continuation candidate in output
// order and accepts as soon as one satisfies it.
func acceptAnyCandidate(old model.PoolState, ownScript common.Hash, view model.LedgerView, pred func(old, next model.PoolState) bool, what string) model.Verdict {
	candidates := FindContinuations(ownScript, view)
	if len(candidates) == 0 {
		return model.Reject(model.ReasonStructuralMismatch, "no decodable continuation")
	}
	for _, next := range candidates {
		if pred(old, next) {
			return model.Accept()
		}
	}
	return model.Reject(model.ReasonInvariantViolation, what+" invariant not satisfied by any continuation")
}

func evaluateUpdateSettings(old model.PoolState, action model.Action, ownScript common.Hash, view model.LedgerView) model.Verdict {
	// Owner authorization first; evaluation order is an efficiency choice
	// only, the verdict is the same either way.
	if !IsSignedBy(view, old.Owner) {
		return model.Reject(model.ReasonAuthorizationFailure, "owner signature missing")
	}
	if action.NewFeeBps < 0 || action.NewFeeBps > model.MaxFeeBps {
		return model.Reject(model.ReasonRangeViolation, fmt.Sprintf("new fee out of range: %d", action.NewFeeBps))
	}
	if action.NewOracle != nil && !HasReference(view, *action.NewOracle) {
		return model.Reject(model.ReasonStructuralMismatch, "proposed oracle script not referenced")
	}

	candidates := FindContinuations(ownScript, view)
	if len(candidates) == 0 {
		return model.Reject(model.ReasonStructuralMismatch, "no decodable continuation")
	}
	for _, next := range candidates {
		if updateSettingsOK(old, next, action.NewFeeBps, action.NewOracle) {
			return model.Accept()
		}
	}
	return model.Reject(model.ReasonInvariantViolation, "settings update not reflected by any continuation")
}

func hasInput(view model.LedgerView, ref model.OutRef) bool {
	for _, in := range view.Inputs {
		if in.Ref == ref {
			return true
		}
	}
	return false
}
