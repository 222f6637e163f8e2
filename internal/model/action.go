package model

import "github.com/ethereum/go-ethereum/common"

// ActionKind enumerates the pool transition kinds.
type ActionKind string

const (
	ActionSwap            ActionKind = "swap"
	ActionAddLiquidity    ActionKind = "add_liquidity"
	ActionRemoveLiquidity ActionKind = "remove_liquidity"
	ActionUpdateSettings  ActionKind = "update_settings"
)

// Action is the requested pool transition. Kind selects the variant; the
// remaining fields are only meaningful for the variant that carries them.
type Action struct {
	Kind ActionKind `json:"kind"`

	// Swap
	ExactOutput bool `json:"exact_output,omitempty"`

	// UpdateSettings
	NewFeeBps int64        `json:"new_fee_bps,omitempty"`
	NewOracle *common.Hash `json:"new_oracle,omitempty"`
}
