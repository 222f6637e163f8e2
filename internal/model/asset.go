package model

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AssetID identifies an asset by its minting policy and byte name.
type AssetID struct {
	Policy common.Hash   `json:"policy"`
	Name   hexutil.Bytes `json:"name"`
}

// Equal reports whether two asset identifiers are the same asset.
func (a AssetID) Equal(b AssetID) bool {
	return a.Policy == b.Policy && bytes.Equal(a.Name, b.Name)
}

// String renders the asset id as policy.name for logs and records.
func (a AssetID) String() string {
	return a.Policy.Hex() + "." + a.Name.String()
}
