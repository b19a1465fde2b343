package costing

import "math"

// IngredientLine 單一食材的成本明細
type IngredientLine struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category Category   `json:"category"`
	Cost     float64    `json:"cost"`
	Status   CostStatus `json:"status"`
}

// PackagingLine 單一包材的成本明細
type PackagingLine struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Cost   float64    `json:"cost"`
	Status CostStatus `json:"status"`
}

// Summary 批次成本與售價彙總；數值不做四捨五入
type Summary struct {
	IngredientCost  float64              `json:"ingredientCost"`
	PackagingCost   float64              `json:"packagingCost"`
	LaborCost       float64              `json:"laborCost"`
	TotalBatchCost  float64              `json:"totalBatchCost"`
	CostPerItem     float64              `json:"costPerItem"`
	ProfitAmount    float64              `json:"profitAmount"`
	TotalBatchPrice float64              `json:"totalBatchPrice"`
	PricePerItem    float64              `json:"pricePerItem"`
	CategoryCosts   map[Category]float64 `json:"categoryCosts"`
	Ingredients     []IngredientLine     `json:"ingredients"`
	Packaging       []PackagingLine      `json:"packaging"`
}

// Summarize 彙總整個配方的批次成本、每件成本、利潤與售價。
// 每一筆食材與包材獨立計算，單筆退化為 0 不影響其他筆。
func Summarize(state RecipeState) Summary {
	s := Summary{
		CategoryCosts: make(map[Category]float64, 3),
		Ingredients:   make([]IngredientLine, 0, len(state.Ingredients)),
		Packaging:     make([]PackagingLine, 0, len(state.Packaging)),
	}
	for _, c := range Categories() {
		s.CategoryCosts[c] = 0
	}

	for _, ing := range state.Ingredients {
		cost := EvaluateIngredient(ing)
		s.IngredientCost += cost.Value
		s.CategoryCosts[NormalizeCategory(string(ing.Category))] += cost.Value
		s.Ingredients = append(s.Ingredients, IngredientLine{
			ID:       ing.ID,
			Name:     ing.Name,
			Category: ing.Category,
			Cost:     cost.Value,
			Status:   cost.Status,
		})
	}

	for _, p := range state.Packaging {
		cost := EvaluatePackaging(p)
		s.PackagingCost += cost.Value
		s.Packaging = append(s.Packaging, PackagingLine{
			ID:     p.ID,
			Name:   p.Name,
			Cost:   cost.Value,
			Status: cost.Status,
		})
	}

	s.LaborCost = finiteOrZero(state.HourlyRate * state.HoursSpent)
	s.TotalBatchCost = s.IngredientCost + s.PackagingCost + s.LaborCost
	s.ProfitAmount = finiteOrZero(s.TotalBatchCost * (state.ProfitMargin / 100))
	s.TotalBatchPrice = s.TotalBatchCost + s.ProfitAmount

	if state.BatchYield > 0 {
		n := float64(state.BatchYield)
		s.CostPerItem = s.TotalBatchCost / n
		s.PricePerItem = s.TotalBatchPrice / n
	}

	return s
}

// Round2 四捨五入到小數兩位，供顯示層使用
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
