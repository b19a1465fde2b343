package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePackaging(t *testing.T) {
	tests := []struct {
		name       string
		item       Packaging
		wantValue  float64
		wantStatus CostStatus
	}{
		{
			name:       "boxes",
			item:       Packaging{PurchasePrice: 5, PurchaseQuantity: "100", QuantityUsed: "12"},
			wantValue:  0.6,
			wantStatus: StatusOK,
		},
		{
			name:       "fractional usage",
			item:       Packaging{PurchasePrice: 2, PurchaseQuantity: "1", QuantityUsed: "1/2"},
			wantValue:  1,
			wantStatus: StatusOK,
		},
		{
			name:       "zero purchase quantity",
			item:       Packaging{PurchasePrice: 5, PurchaseQuantity: "0", QuantityUsed: "12"},
			wantValue:  0,
			wantStatus: StatusZeroPurchaseQuantity,
		},
		{
			name:       "negative purchase quantity",
			item:       Packaging{PurchasePrice: 5, PurchaseQuantity: "-10", QuantityUsed: "12"},
			wantValue:  0,
			wantStatus: StatusZeroPurchaseQuantity,
		},
		{
			name:       "unparseable usage",
			item:       Packaging{PurchasePrice: 5, PurchaseQuantity: "10", QuantityUsed: "lots"},
			wantValue:  0,
			wantStatus: StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePackaging(tt.item)
			assert.InDelta(t, tt.wantValue, got.Value, 1e-9)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.InDelta(t, tt.wantValue, PackagingCost(tt.item), 1e-9)
		})
	}
}
