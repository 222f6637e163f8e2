package pool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/model"
)

func TestIsSignedBy(t *testing.T) {
	alice := common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob := common.HexToAddress("0x2222222222222222222222222222222222222222")

	view := model.LedgerView{Signers: []common.Address{alice}}
	if !IsSignedBy(view, alice) {
		t.Fatalf("declared signer not found")
	}
	if IsSignedBy(view, bob) {
		t.Fatalf("absent signer reported present")
	}
	if IsSignedBy(model.LedgerView{}, alice) {
		t.Fatalf("empty signer set reported a signer")
	}
}

func TestHasReference(t *testing.T) {
	target := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000deadbeef")
	other := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000cafe0000")

	view := model.LedgerView{
		ReferenceInputs: []model.TxInput{
			{Ref: model.OutRef{Index: 0}},
			{Ref: model.OutRef{Index: 1}, ReferenceScript: &other},
			{Ref: model.OutRef{Index: 2}, ReferenceScript: &target},
		},
	}

	if !HasReference(view, target) {
		t.Fatalf("referenced script not found")
	}
	if HasReference(view, common.HexToHash("0x01")) {
		t.Fatalf("unreferenced script reported present")
	}
	if HasReference(model.LedgerView{}, target) {
		t.Fatalf("empty view reported a reference")
	}
}
