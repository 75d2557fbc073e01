package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
)

// IsCompatible reports whether a batch can be offered to a pool. All
// conditions must hold: same commodity, pool open with room remaining
// (a pool-level gate, not a per-batch volume check), batch price within
// the pool's price ceiling expressed in local currency via the shared
// conversion rate, and batch moisture and impurity within the pool's
// ceilings.
//
// The pool's MinNature and MaxWeed ceilings are not checked: batches
// carry no nature or weed measurements. Known asymmetry in the data
// model, not to be patched here without a batch-side field.
func IsCompatible(b *domain.Batch, p *domain.Pool, rate decimal.Decimal) bool {
	if b.Commodity != p.Commodity {
		return false
	}
	if p.Status != domain.PoolStatusOpen {
		return false
	}
	if p.CurrentVolume.GreaterThanOrEqual(p.TargetVolume) {
		return false
	}
	if b.Price.GreaterThan(domain.ToLocal(p.Price, rate)) {
		return false
	}
	if b.Moisture > p.MaxMoisture {
		return false
	}
	if b.Impurity > p.MaxImpurity {
		return false
	}
	return true
}
