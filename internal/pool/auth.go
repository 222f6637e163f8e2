package pool

import (
	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/model"
)

// IsSignedBy reports whether id appears in the transaction's declared signer
// set. This is a pure membership test; signature verification happens
// upstream when the ledger view is built.
func IsSignedBy(view model.LedgerView, id common.Address) bool {
	for _, signer := range view.Signers {
		if signer == id {
			return true
		}
	}
	return false
}

// HasReference reports whether any reference input carries an executable
// reference whose hash equals target.
func HasReference(view model.LedgerView, target common.Hash) bool {
	for _, in := range view.ReferenceInputs {
		if in.ReferenceScript != nil && *in.ReferenceScript == target {
			return true
		}
	}
	return false
}
