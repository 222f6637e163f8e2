package model

// Reason classifies why a transition was rejected.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonStructuralMismatch   Reason = "structural_mismatch"
	ReasonInvariantViolation   Reason = "invariant_violation"
	ReasonAuthorizationFailure Reason = "authorization_failure"
	ReasonRangeViolation       Reason = "range_violation"
)

// Verdict is the single outcome of one validation call. There is no partial
// acceptance: the transaction is admitted as a whole or not at all.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Accept builds an accepting verdict.
func Accept() Verdict {
	return Verdict{Accepted: true}
}

// Reject builds a rejecting verdict with a reason and detail.
func Reject(reason Reason, detail string) Verdict {
	return Verdict{Accepted: false, Reason: reason, Detail: detail}
}
