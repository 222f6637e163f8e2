package model

import "github.com/ethereum/go-ethereum/common"

// MultiSigState is the datum of the companion access-control validator.
type MultiSigState struct {
	Signatories []common.Address
	Threshold   int
	TimeLock    *int64
}

// HasSignatory reports whether id is a declared signatory.
func (m MultiSigState) HasSignatory(id common.Address) bool {
	for _, s := range m.Signatories {
		if s == id {
			return true
		}
	}
	return false
}
