package costing

import (
	"fmt"
	"math"
	"strings"
)

// Category 食材分類，只用於分組顯示，不影響成本計算
type Category string

const (
	CategoryDry      Category = "dry"
	CategoryWet      Category = "wet"
	CategoryAdditive Category = "additive"
)

// Categories 回傳所有分類（顯示順序）
func Categories() []Category {
	return []Category{CategoryDry, CategoryWet, CategoryAdditive}
}

// Valid 是否為已知分類
func (c Category) Valid() bool {
	switch c {
	case CategoryDry, CategoryWet, CategoryAdditive:
		return true
	}
	return false
}

// ParseCategory 嚴格解析分類
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported category %q", s)
	}
	return c, nil
}

// NormalizeCategory 不分大小寫對應分類，無法辨識時回傳 dry
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CategoryDry
}

// Ingredient 食材：購買價格與數量，以及每批次用量
type Ingredient struct {
	ID               string   `json:"id" msgpack:"id"`
	Name             string   `json:"name" msgpack:"name"`
	Category         Category `json:"category" msgpack:"category"`
	PurchasePrice    float64  `json:"purchasePrice" msgpack:"purchasePrice"`
	PurchaseQuantity Quantity `json:"purchaseQuantity" msgpack:"purchaseQuantity"`
	PurchaseUnit     Unit     `json:"purchaseUnit" msgpack:"purchaseUnit"`
	RecipeQuantity   Quantity `json:"recipeQuantity" msgpack:"recipeQuantity"`
	RecipeUnit       Unit     `json:"recipeUnit" msgpack:"recipeUnit"`
}

// CostStatus 成本計算的結果狀態；非 ok 時成本一律為 0
type CostStatus string

const (
	StatusOK                   CostStatus = "ok"
	StatusZeroPurchaseQuantity CostStatus = "zero_purchase_quantity"
	StatusIncompatibleUnits    CostStatus = "incompatible_units"
	StatusMissingFactor        CostStatus = "missing_factor"
	StatusNonFinite            CostStatus = "non_finite"
)

// Cost 一定成功的計算結果，Status 說明為何退化為 0
type Cost struct {
	Value  float64    `json:"value"`
	Status CostStatus `json:"status"`
}

func degraded(status CostStatus) Cost {
	return Cost{Value: 0, Status: status}
}

func settle(v float64) Cost {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return degraded(StatusNonFinite)
	}
	return Cost{Value: v, Status: StatusOK}
}

// EvaluateIngredient 計算食材對單批次成本的貢獻
func EvaluateIngredient(ing Ingredient) Cost {
	pQty := ing.PurchaseQuantity.Float64()
	rQty := ing.RecipeQuantity.Float64()

	if pQty == 0 {
		return degraded(StatusZeroPurchaseQuantity)
	}

	// 件數無法換算為質量或容量，兩邊都必須是 pcs
	if ing.PurchaseUnit == Piece || ing.RecipeUnit == Piece {
		if ing.PurchaseUnit != ing.RecipeUnit {
			return degraded(StatusIncompatibleUnits)
		}
		return settle((ing.PurchasePrice / pQty) * rQty)
	}

	// NOTE: 質量與容量混用（例如 kg 對 cup）不會被拒絕，會得到數值上有定義但無物理意義的結果
	pFactor, pok := ing.PurchaseUnit.Factor()
	rFactor, rok := ing.RecipeUnit.Factor()
	if !pok || !rok {
		return degraded(StatusMissingFactor)
	}

	pricePerBase := ing.PurchasePrice / (pQty * pFactor)
	usageInBase := rQty * rFactor
	return settle(pricePerBase * usageInBase)
}

// IngredientCost 食材成本，任何退化情況回傳 0
func IngredientCost(ing Ingredient) float64 {
	return EvaluateIngredient(ing).Value
}
