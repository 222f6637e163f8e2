package model

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// TransitionRecord is one candidate transition as read from a JSONL stream:
// the consumed pool datum, the requested action, and the transaction view.
type TransitionRecord struct {
	Seq       uint64          `json:"seq"`
	OwnScript common.Hash     `json:"own_script"`
	SelfRef   OutRef          `json:"self_ref"`
	OldDatum  json.RawMessage `json:"old_datum"`
	Action    Action          `json:"action"`
	View      LedgerView      `json:"view"`
}

// VerdictRecord is the stored outcome of evaluating one transition.
type VerdictRecord struct {
	Seq         uint64 `json:"seq"`
	Script      string `json:"script"`
	ActionKind  string `json:"action_kind"`
	Accepted    bool   `json:"accepted"`
	Reason      string `json:"reason,omitempty"`
	Detail      string `json:"detail,omitempty"`
	EvaluatedAt string `json:"evaluated_at"`
}
