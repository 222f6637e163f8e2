package codec

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"poolGuard/internal/model"
)

// Datum type tags carried in the envelope.
const (
	TypePoolState = "pool_state"
	TypeMultiSig  = "multisig"
)

// Envelope wraps a typed datum blob.
type Envelope struct {
	Type   string          `json:"type"`
	Fields json.RawMessage `json:"fields"`
}

type assetFields struct {
	Policy common.Hash   `json:"policy"`
	Name   hexutil.Bytes `json:"name"`
}

type poolStateFields struct {
	AssetA      assetFields    `json:"asset_a"`
	AssetB      assetFields    `json:"asset_b"`
	ReserveA    string         `json:"reserve_a"`
	ReserveB    string         `json:"reserve_b"`
	FeeBps      int64          `json:"fee_bps"`
	Owner       common.Address `json:"owner"`
	PriceOracle *common.Hash   `json:"price_oracle,omitempty"`
}

type multiSigFields struct {
	Signatories []common.Address `json:"signatories"`
	Threshold   int              `json:"threshold"`
	TimeLock    *int64           `json:"time_lock,omitempty"`
}

// EncodePoolState serializes a pool state into its datum envelope.
func EncodePoolState(st model.PoolState) ([]byte, error) {
	if st.ReserveA == nil || st.ReserveB == nil {
		return nil, fmt.Errorf("reserves are required")
	}

	fields := poolStateFields{
		AssetA:      assetFields{Policy: st.AssetA.Policy, Name: st.AssetA.Name},
		AssetB:      assetFields{Policy: st.AssetB.Policy, Name: st.AssetB.Name},
		ReserveA:    st.ReserveA.String(),
		ReserveB:    st.ReserveB.String(),
		FeeBps:      st.FeeBps,
		Owner:       st.Owner,
		PriceOracle: st.PriceOracle,
	}
	return encodeEnvelope(TypePoolState, fields)
}

// DecodePoolState parses a pool state from its datum envelope. Any
// malformed or out-of-range datum is an error; callers treat that as
// "not a pool state", never as a fatal condition.
func DecodePoolState(raw []byte) (model.PoolState, error) {
	fieldsRaw, err := openEnvelope(raw, TypePoolState)
	if err != nil {
		return model.PoolState{}, err
	}

	var fields poolStateFields
	if err := json.Unmarshal(fieldsRaw, &fields); err != nil {
		return model.PoolState{}, fmt.Errorf("parse pool state fields: %w", err)
	}

	reserveA, err := parseReserve(fields.ReserveA, "reserve_a")
	if err != nil {
		return model.PoolState{}, err
	}
	reserveB, err := parseReserve(fields.ReserveB, "reserve_b")
	if err != nil {
		return model.PoolState{}, err
	}
	if fields.FeeBps < 0 || fields.FeeBps > model.MaxFeeBps {
		return model.PoolState{}, fmt.Errorf("fee_bps out of range: %d", fields.FeeBps)
	}

	return model.PoolState{
		AssetA:      model.AssetID{Policy: fields.AssetA.Policy, Name: fields.AssetA.Name},
		AssetB:      model.AssetID{Policy: fields.AssetB.Policy, Name: fields.AssetB.Name},
		ReserveA:    reserveA,
		ReserveB:    reserveB,
		FeeBps:      fields.FeeBps,
		Owner:       fields.Owner,
		PriceOracle: fields.PriceOracle,
	}, nil
}

// EncodeMultiSigState serializes a multisig state into its datum envelope.
func EncodeMultiSigState(st model.MultiSigState) ([]byte, error) {
	fields := multiSigFields{
		Signatories: st.Signatories,
		Threshold:   st.Threshold,
		TimeLock:    st.TimeLock,
	}
	return encodeEnvelope(TypeMultiSig, fields)
}

// DecodeMultiSigState parses a multisig state from its datum envelope.
func DecodeMultiSigState(raw []byte) (model.MultiSigState, error) {
	fieldsRaw, err := openEnvelope(raw, TypeMultiSig)
	if err != nil {
		return model.MultiSigState{}, err
	}

	var fields multiSigFields
	if err := json.Unmarshal(fieldsRaw, &fields); err != nil {
		return model.MultiSigState{}, fmt.Errorf("parse multisig fields: %w", err)
	}
	if fields.Threshold < 1 {
		return model.MultiSigState{}, fmt.Errorf("threshold must be at least 1")
	}
	if fields.Threshold > len(fields.Signatories) {
		return model.MultiSigState{}, fmt.Errorf("threshold %d exceeds signatory count %d", fields.Threshold, len(fields.Signatories))
	}

	return model.MultiSigState{
		Signatories: fields.Signatories,
		Threshold:   fields.Threshold,
		TimeLock:    fields.TimeLock,
	}, nil
}

func encodeEnvelope(typ string, fields interface{}) ([]byte, error) {
	fieldsRaw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal %s fields: %w", typ, err)
	}
	data, err := json.Marshal(Envelope{Type: typ, Fields: fieldsRaw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", typ, err)
	}
	return data, nil
}

func openEnvelope(raw []byte, want string) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty datum")
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse datum envelope: %w", err)
	}
	if env.Type != want {
		return nil, fmt.Errorf("unexpected datum type: %s", env.Type)
	}
	if len(env.Fields) == 0 {
		return nil, fmt.Errorf("missing datum fields")
	}
	return env.Fields, nil
}

func parseReserve(value, name string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %s", name, value)
	}
	if parsed.Sign() < 0 {
		return nil, fmt.Errorf("%s must be non-negative", name)
	}
	return parsed, nil
}
