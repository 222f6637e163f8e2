package model

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// OutRef identifies a transaction output being consumed.
type OutRef struct {
	TxHash common.Hash `json:"tx_hash"`
	Index  uint32      `json:"index"`
}

// TxInput is a consumed or referenced output as seen inside the transaction.
type TxInput struct {
	Ref             OutRef            `json:"ref"`
	Address         common.Hash       `json:"address"`
	Value           map[string]string `json:"value,omitempty"`
	Datum           json.RawMessage   `json:"datum,omitempty"`
	ReferenceScript *common.Hash      `json:"reference_script,omitempty"`
}

// TxOutput is a produced output.
type TxOutput struct {
	Address         common.Hash       `json:"address"`
	Value           map[string]string `json:"value,omitempty"`
	Datum           json.RawMessage   `json:"datum,omitempty"`
	ReferenceScript *common.Hash      `json:"reference_script,omitempty"`
}

// LedgerView is a read-only projection of one candidate transaction: what it
// consumes, what it produces, when it is valid, and who signed it. The
// validator never mutates it.
type LedgerView struct {
	Inputs          []TxInput        `json:"inputs"`
	ReferenceInputs []TxInput        `json:"reference_inputs,omitempty"`
	Outputs         []TxOutput       `json:"outputs"`
	ValidFrom       *int64           `json:"valid_from,omitempty"`
	ValidTo         *int64           `json:"valid_to,omitempty"`
	Signers         []common.Address `json:"signers"`
}
