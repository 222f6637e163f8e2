package pool

import (
	"github.com/ethereum/go-ethereum/common"

	"poolGuard/internal/codec"
	"poolGuard/internal/model"
)

// FindContinuations scans the transaction outputs locked at ownScript and
// returns the pool states that decode from their datums, in output order.
// Outputs whose datum fails to decode are not candidates and are skipped.
// An empty result means there is no valid continuation and every dependent
// check fails closed.
func FindContinuations(ownScript common.Hash, view model.LedgerView) []model.PoolState {
	candidates := make([]model.PoolState, 0, 1)
	for _, out := range view.Outputs {
		if out.Address != ownScript {
			continue
		}
		if len(out.Datum) == 0 {
			continue
		}
		st, err := codec.DecodePoolState(out.Datum)
		if err != nil {
			continue
		}
		candidates = append(candidates, st)
	}
	return candidates
}
