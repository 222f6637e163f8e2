package pool

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/codec"
	"poolGuard/internal/model"
)

var (
	testScript  = common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000feed0")
	testSelfRef = model.OutRef{TxHash: common.HexToHash("0xabc123"), Index: 0}
)

func mustDatum(t *testing.T, st model.PoolState) json.RawMessage {
	t.Helper()
	data, err := codec.EncodePoolState(st)
	if err != nil {
		t.Fatalf("encode datum: %v", err)
	}
	return data
}

// testView builds a transaction view consuming the pool input and producing
// one continuation output per candidate state.
func testView(t *testing.T, old model.PoolState, candidates ...model.PoolState) model.LedgerView {
	t.Helper()
	view := model.LedgerView{
		Inputs: []model.TxInput{
			{Ref: testSelfRef, Address: testScript, Datum: mustDatum(t, old)},
		},
	}
	for _, c := range candidates {
		view.Outputs = append(view.Outputs, model.TxOutput{
			Address: testScript,
			Datum:   mustDatum(t, c),
		})
	}
	return view
}

func TestEvaluateSwapAccepted(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))

	verdict := Evaluate(old, model.Action{Kind: model.ActionSwap}, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("valid swap rejected: %+v", verdict)
	}
}

func TestEvaluateOwnInputMissing(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))
	otherRef := model.OutRef{TxHash: common.HexToHash("0xdef456"), Index: 3}

	verdict := Evaluate(old, model.Action{Kind: model.ActionSwap}, otherRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonStructuralMismatch {
		t.Fatalf("missing own input not rejected structurally: %+v", verdict)
	}
}

func TestEvaluateNoContinuation(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old)

	verdict := Evaluate(old, model.Action{Kind: model.ActionAddLiquidity}, testSelfRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonStructuralMismatch {
		t.Fatalf("missing continuation not rejected structurally: %+v", verdict)
	}
}

func TestEvaluateSkipsUndecodableOutputs(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))

	// Outputs that fail to decode are simply not candidates.
	view.Outputs = append([]model.TxOutput{
		{Address: testScript, Datum: json.RawMessage(`{"garbage":`)},
		{Address: testScript},
	}, view.Outputs...)

	verdict := Evaluate(old, model.Action{Kind: model.ActionSwap}, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("undecodable sibling outputs broke the swap: %+v", verdict)
	}
}

func TestEvaluateAcceptsAnyCandidate(t *testing.T) {
	old := testPool(10000, 20000, 30)
	bad := withReserves(old, 11000, 18000)
	good := withReserves(old, 11000, 18200)
	view := testView(t, old, bad, good)

	verdict := Evaluate(old, model.Action{Kind: model.ActionSwap}, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("valid candidate after invalid one rejected: %+v", verdict)
	}

	view = testView(t, old, bad, bad)
	verdict = Evaluate(old, model.Action{Kind: model.ActionSwap}, testSelfRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonInvariantViolation {
		t.Fatalf("all-invalid candidates not rejected on invariant: %+v", verdict)
	}
}

func TestEvaluateExactOutputSwapSameArithmetic(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))

	verdict := Evaluate(old, model.Action{Kind: model.ActionSwap, ExactOutput: true}, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("exact-output swap with identical deltas rejected: %+v", verdict)
	}
}

func TestEvaluateUpdateSettingsAuthorization(t *testing.T) {
	old := testPool(10000, 20000, 30)
	next := withReserves(old, 10000, 20000)
	next.FeeBps = 50
	view := testView(t, old, next)
	action := model.Action{Kind: model.ActionUpdateSettings, NewFeeBps: 50}

	verdict := Evaluate(old, action, testSelfRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonAuthorizationFailure {
		t.Fatalf("unsigned settings update not rejected on authorization: %+v", verdict)
	}

	view.Signers = []common.Address{old.Owner}
	verdict = Evaluate(old, action, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("owner-signed settings update rejected: %+v", verdict)
	}
}

func TestEvaluateUpdateSettingsFeeRange(t *testing.T) {
	old := testPool(10000, 20000, 30)
	next := withReserves(old, 10000, 20000)
	next.FeeBps = 50
	view := testView(t, old, next)
	view.Signers = []common.Address{old.Owner}

	verdict := Evaluate(old, model.Action{Kind: model.ActionUpdateSettings, NewFeeBps: 2000}, testSelfRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonRangeViolation {
		t.Fatalf("out-of-range fee not rejected on range: %+v", verdict)
	}

	verdict = Evaluate(old, model.Action{Kind: model.ActionUpdateSettings, NewFeeBps: -1}, testSelfRef, testScript, view)
	if verdict.Accepted || verdict.Reason != model.ReasonRangeViolation {
		t.Fatalf("negative fee not rejected on range: %+v", verdict)
	}
}

func TestEvaluateUpdateSettingsOracleReference(t *testing.T) {
	old := testPool(10000, 20000, 30)
	oracle := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000deadbeef")
	next := withReserves(old, 10000, 20000)
	next.FeeBps = 50
	next.PriceOracle = &oracle

	view := testView(t, old, next)
	view.Signers = []common.Address{old.Owner}
	action := model.Action{Kind: model.ActionUpdateSettings, NewFeeBps: 50, NewOracle: &oracle}

	verdict := Evaluate(old, action, testSelfRef, testScript, view)
	if verdict.Accepted {
		t.Fatalf("oracle update without referenced script accepted")
	}

	view.ReferenceInputs = []model.TxInput{
		{Ref: model.OutRef{TxHash: common.HexToHash("0xdef"), Index: 1}, ReferenceScript: &oracle},
	}
	verdict = Evaluate(old, action, testSelfRef, testScript, view)
	if !verdict.Accepted {
		t.Fatalf("oracle update with referenced script rejected: %+v", verdict)
	}
}

func TestEvaluateUnknownActionRejected(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))

	verdict := Evaluate(old, model.Action{Kind: "drain"}, testSelfRef, testScript, view)
	if verdict.Accepted {
		t.Fatalf("unknown action accepted")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	old := testPool(10000, 20000, 30)
	view := testView(t, old, withReserves(old, 11000, 18200))
	action := model.Action{Kind: model.ActionSwap}

	first := Evaluate(old, action, testSelfRef, testScript, view)
	for i := 0; i < 10; i++ {
		if got := Evaluate(old, action, testSelfRef, testScript, view); got != first {
			t.Fatalf("verdict changed between evaluations: %+v != %+v", got, first)
		}
	}
}
