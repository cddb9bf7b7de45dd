package queue

import (
	"math"

	"github.com/ternarybob/docling/internal/common"
)

// tierMultipliers scale the timeout formula per processing tier.
// Unknown tier strings fold to the standard multiplier.
var tierMultipliers = map[string]float64{
	common.TierLightweight: 0.5,
	common.TierStandard:    1.0,
	common.TierAdvanced:    2.0,
}

// CalcTimeout computes the processing deadline in seconds:
// round((base + page_count * per_page) * tier_multiplier)
func CalcTimeout(pageCount int, tier string, baseSeconds, perPageSeconds int) int {
	multiplier, ok := tierMultipliers[tier]
	if !ok {
		multiplier = 1.0
	}

	return int(math.Round(float64(baseSeconds+pageCount*perPageSeconds) * multiplier))
}
