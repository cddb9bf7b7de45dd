package queue

import (
	"testing"

	"github.com/ternarybob/docling/internal/common"
)

func TestCalcTimeout(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		tier      string
		expected  int
	}{
		{"zero pages standard", 0, common.TierStandard, 60},
		{"zero pages lightweight", 0, common.TierLightweight, 30},
		{"zero pages advanced", 0, common.TierAdvanced, 120},
		{"ten pages standard", 10, common.TierStandard, 160},
		{"ten pages lightweight", 10, common.TierLightweight, 80},
		{"ten pages advanced", 10, common.TierAdvanced, 320},
		{"default estimate standard", 100, common.TierStandard, 1060},
		{"default estimate lightweight", 100, common.TierLightweight, 530},
		{"default estimate advanced", 100, common.TierAdvanced, 2120},
		{"unknown tier falls back to standard", 10, "turbo", 160},
		{"empty tier falls back to standard", 10, "", 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcTimeout(tt.pageCount, tt.tier, 60, 10)
			if got != tt.expected {
				t.Errorf("CalcTimeout(%d, %q) = %d, want %d", tt.pageCount, tt.tier, got, tt.expected)
			}
		})
	}
}

func TestCalcTimeoutOddMultiple(t *testing.T) {
	// 60 + 5*10 = 110; lightweight halves it to 55 exactly
	if got := CalcTimeout(5, common.TierLightweight, 60, 10); got != 55 {
		t.Errorf("CalcTimeout(5, lightweight) = %d, want 55", got)
	}
}
