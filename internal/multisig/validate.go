package multisig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/codec"
	"poolGuard/internal/model"
	"poolGuard/internal/pool"
)

// ActionKind enumerates the multisig transition kinds.
type ActionKind string

const (
	ActionSpend           ActionKind = "spend"
	ActionAddSignatory    ActionKind = "add_signatory"
	ActionRemoveSignatory ActionKind = "remove_signatory"
	ActionSetThreshold    ActionKind = "set_threshold"
)

// Action is the requested multisig transition.
type Action struct {
	Kind         ActionKind      `json:"kind"`
	Signatory    *common.Address `json:"signatory,omitempty"`
	NewThreshold *int            `json:"new_threshold,omitempty"`
}

// Evaluate decides whether the transaction may consume a multisig-guarded
// output. Spend releases funds; the config actions replace the datum with
// an adjusted signatory set or threshold.
//
// Config continuations are checked by signatory count and threshold only.
// The contents of the new signatory list are deliberately not compared
// against the expected post-change set; that matches the behavior under
// replication and is exercised explicitly in the tests.
func Evaluate(old model.MultiSigState, action Action, ownScript common.Hash, view model.LedgerView) model.Verdict {
	if !thresholdMet(old, view) {
		return model.Reject(model.ReasonAuthorizationFailure,
			fmt.Sprintf("%d of %d required signatures present", signedCount(old, view), old.Threshold))
	}

	switch action.Kind {
	case ActionSpend:
		if !timeLockElapsed(old, view) {
			return model.Reject(model.ReasonAuthorizationFailure, "time lock not yet elapsed")
		}
		return model.Accept()

	case ActionAddSignatory:
		if action.Signatory == nil {
			return model.Reject(model.ReasonStructuralMismatch, "signatory is required")
		}
		if old.HasSignatory(*action.Signatory) {
			return model.Reject(model.ReasonInvariantViolation, "signatory already present")
		}
		return acceptConfigContinuation(old, ownScript, view, len(old.Signatories)+1, old.Threshold)

	case ActionRemoveSignatory:
		if action.Signatory == nil {
			return model.Reject(model.ReasonStructuralMismatch, "signatory is required")
		}
		if !old.HasSignatory(*action.Signatory) {
			return model.Reject(model.ReasonInvariantViolation, "signatory not present")
		}
		if old.Threshold > len(old.Signatories)-1 {
			return model.Reject(model.ReasonRangeViolation, "threshold would exceed signatory count")
		}
		return acceptConfigContinuation(old, ownScript, view, len(old.Signatories)-1, old.Threshold)

	case ActionSetThreshold:
		if action.NewThreshold == nil {
			return model.Reject(model.ReasonStructuralMismatch, "new threshold is required")
		}
		if *action.NewThreshold < 1 || *action.NewThreshold > len(old.Signatories) {
			return model.Reject(model.ReasonRangeViolation, fmt.Sprintf("threshold out of range: %d", *action.NewThreshold))
		}
		return acceptConfigContinuation(old, ownScript, view, len(old.Signatories), *action.NewThreshold)

	default:
		return model.Reject(model.ReasonStructuralMismatch, fmt.Sprintf("unsupported action kind: %s", action.Kind))
	}
}

// acceptConfigContinuation accepts if any continuation at ownScript decodes
// to a multisig state with the expected signatory count and threshold.
func acceptConfigContinuation(old model.MultiSigState, ownScript common.Hash, view model.LedgerView, wantCount, wantThreshold int) model.Verdict {
	found := false
	for _, out := range view.Outputs {
		if out.Address != ownScript || len(out.Datum) == 0 {
			continue
		}
		next, err := codec.DecodeMultiSigState(out.Datum)
		if err != nil {
			continue
		}
		found = true
		if len(next.Signatories) == wantCount && next.Threshold == wantThreshold && sameTimeLock(old.TimeLock, next.TimeLock) {
			return model.Accept()
		}
	}
	if !found {
		return model.Reject(model.ReasonStructuralMismatch, "no decodable continuation")
	}
	return model.Reject(model.ReasonInvariantViolation, "config change not reflected by any continuation")
}

func thresholdMet(st model.MultiSigState, view model.LedgerView) bool {
	return signedCount(st, view) >= st.Threshold
}

// signedCount counts declared signatories present in the signer set.
func signedCount(st model.MultiSigState, view model.LedgerView) int {
	count := 0
	for _, s := range st.Signatories {
		if pool.IsSignedBy(view, s) {
			count++
		}
	}
	return count
}

// timeLockElapsed requires the transaction's lower validity bound to prove
// the lock has passed. An unbounded interval cannot prove anything and
// fails closed.
func timeLockElapsed(st model.MultiSigState, view model.LedgerView) bool {
	if st.TimeLock == nil {
		return true
	}
	if view.ValidFrom == nil {
		return false
	}
	return *view.ValidFrom >= *st.TimeLock
}

func sameTimeLock(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
