package costing

import (
	"fmt"
	"math"
)

// IngredientPatch 食材的部分更新，nil 欄位保持不變
type IngredientPatch struct {
	Name             *string   `json:"name,omitempty"`
	Category         *Category `json:"category,omitempty"`
	PurchasePrice    *float64  `json:"purchasePrice,omitempty"`
	PurchaseQuantity *Quantity `json:"purchaseQuantity,omitempty"`
	PurchaseUnit     *Unit     `json:"purchaseUnit,omitempty"`
	RecipeQuantity   *Quantity `json:"recipeQuantity,omitempty"`
	RecipeUnit       *Unit     `json:"recipeUnit,omitempty"`
}

// Validate 驗證分類、單位與價格；數量表達式不驗證，無法解析時計算為 0
func (p IngredientPatch) Validate() error {
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("unsupported category %q", *p.Category)
	}
	if p.PurchaseUnit != nil && !p.PurchaseUnit.Valid() {
		return fmt.Errorf("unsupported purchaseUnit %q", *p.PurchaseUnit)
	}
	if p.RecipeUnit != nil && !p.RecipeUnit.Valid() {
		return fmt.Errorf("unsupported recipeUnit %q", *p.RecipeUnit)
	}
	if p.PurchasePrice != nil {
		if err := validatePrice(*p.PurchasePrice); err != nil {
			return err
		}
	}
	return nil
}

// Apply 套用到食材
func (p IngredientPatch) Apply(ing *Ingredient) {
	if p.Name != nil {
		ing.Name = *p.Name
	}
	if p.Category != nil {
		ing.Category = *p.Category
	}
	if p.PurchasePrice != nil {
		ing.PurchasePrice = *p.PurchasePrice
	}
	if p.PurchaseQuantity != nil {
		ing.PurchaseQuantity = *p.PurchaseQuantity
	}
	if p.PurchaseUnit != nil {
		ing.PurchaseUnit = *p.PurchaseUnit
	}
	if p.RecipeQuantity != nil {
		ing.RecipeQuantity = *p.RecipeQuantity
	}
	if p.RecipeUnit != nil {
		ing.RecipeUnit = *p.RecipeUnit
	}
}

// PackagingPatch 包材的部分更新
type PackagingPatch struct {
	Name             *string   `json:"name,omitempty"`
	PurchasePrice    *float64  `json:"purchasePrice,omitempty"`
	PurchaseQuantity *Quantity `json:"purchaseQuantity,omitempty"`
	QuantityUsed     *Quantity `json:"quantityUsed,omitempty"`
}

// Validate 驗證價格
func (p PackagingPatch) Validate() error {
	if p.PurchasePrice != nil {
		return validatePrice(*p.PurchasePrice)
	}
	return nil
}

// Apply 套用到包材
func (p PackagingPatch) Apply(item *Packaging) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.PurchasePrice != nil {
		item.PurchasePrice = *p.PurchasePrice
	}
	if p.PurchaseQuantity != nil {
		item.PurchaseQuantity = *p.PurchaseQuantity
	}
	if p.QuantityUsed != nil {
		item.QuantityUsed = *p.QuantityUsed
	}
}

func validatePrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("purchasePrice must be a non-negative number, got %v", v)
	}
	return nil
}
