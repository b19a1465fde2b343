package costing

// Packaging 包材：不做單位換算，購買與使用以同一隱含單位計數
type Packaging struct {
	ID               string   `json:"id" msgpack:"id"`
	Name             string   `json:"name" msgpack:"name"`
	PurchasePrice    float64  `json:"purchasePrice" msgpack:"purchasePrice"`
	PurchaseQuantity Quantity `json:"purchaseQuantity" msgpack:"purchaseQuantity"`
	QuantityUsed     Quantity `json:"quantityUsed" msgpack:"quantityUsed"`
}

// EvaluatePackaging 計算包材對單批次成本的貢獻
func EvaluatePackaging(p Packaging) Cost {
	pQty := p.PurchaseQuantity.Float64()
	uQty := p.QuantityUsed.Float64()

	if pQty <= 0 {
		return degraded(StatusZeroPurchaseQuantity)
	}
	return settle((p.PurchasePrice / pQty) * uQty)
}

// PackagingCost 包材成本，購買數量不為正時回傳 0
func PackagingCost(p Packaging) float64 {
	return EvaluatePackaging(p).Value
}
