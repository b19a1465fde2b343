// Package importer turns free-form recipe text into ingredient records using an AI provider.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/metrics"
	"bakery-pricing/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrEmptyText 匯入文字為空
var ErrEmptyText = errors.New("recipe text is empty")

// Generator 送出 prompt 並取得模型回覆
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string) (*provider.Response, error)
}

// Importer AI 食譜匯入
type Importer struct {
	gen Generator
}

// New 創建匯入器
func New(gen Generator) *Importer {
	return &Importer{gen: gen}
}

// record 模型回傳的部分食材資料，數量可能是字串或數字
type record struct {
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	RecipeQuantity   costing.Quantity `json:"recipeQuantity"`
	RecipeUnit       string           `json:"recipeUnit"`
	PurchaseQuantity costing.Quantity `json:"purchaseQuantity"`
	PurchaseUnit     string           `json:"purchaseUnit"`
}

// ParseRecipeText 解析食譜文字，回傳補齊預設值的食材；失敗時不回傳任何食材
func (im *Importer) ParseRecipeText(ctx context.Context, text string) ([]costing.Ingredient, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationError(ErrEmptyText.Error())
	}

	start := time.Now()

	resp, err := im.gen.ProcessRequest(ctx, BuildPrompt(text))
	if err != nil {
		metrics.RecordImport(time.Since(start), "provider_error")
		common.LogError("食譜匯入失敗", zap.Error(err))
		return nil, common.ErrAIServiceError.Wrap(err)
	}

	records, err := decodeRecords(resp.Content)
	if err != nil {
		metrics.RecordImport(time.Since(start), "parse_error")
		common.LogError("無法解析模型回覆", zap.Error(err), zap.Int("content_length", len(resp.Content)))
		return nil, common.ErrImportFailed.Wrap(err)
	}

	ingredients := make([]costing.Ingredient, 0, len(records))
	for _, r := range records {
		ingredients = append(ingredients, r.toIngredient())
	}

	metrics.RecordImport(time.Since(start), "success")
	common.LogInfo("食譜匯入完成",
		zap.Int("ingredients_count", len(ingredients)),
		zap.Bool("cache_hit", resp.CacheHit),
	)
	return ingredients, nil
}

// decodeRecords 從回覆中擷取 JSON 陣列（可包在 {"ingredients": ...} 內），容忍 code fence、前後說明文字與未加引號的鍵
func decodeRecords(content string) ([]record, error) {
	raw, ok := common.ExtractJSONArray(content)
	if !ok {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var records []record
	if err := common.ParseJSON(raw, &records); err != nil {
		records = nil
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &records); err2 != nil {
			return nil, fmt.Errorf("failed to parse AI response: %w", err)
		}
	}
	return records, nil
}

// toIngredient 正規化單位與分類並補齊預設值
func (r record) toIngredient() costing.Ingredient {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "Unknown"
	}

	recipeQty := costing.Quantity(strings.TrimSpace(r.RecipeQuantity.String()))
	if recipeQty == "" {
		recipeQty = "0"
	}
	purchaseQty := costing.Quantity(strings.TrimSpace(r.PurchaseQuantity.String()))
	if purchaseQty == "" {
		purchaseQty = "1"
	}

	// 購買單位缺少時沿用食譜單位，兩者都缺時為 kg
	purchaseUnit := costing.Kilogram
	switch {
	case strings.TrimSpace(r.PurchaseUnit) != "":
		purchaseUnit = costing.NormalizeUnit(r.PurchaseUnit)
	case strings.TrimSpace(r.RecipeUnit) != "":
		purchaseUnit = costing.NormalizeUnit(r.RecipeUnit)
	}

	return costing.Ingredient{
		ID:               costing.NewID(),
		Name:             name,
		Category:         costing.NormalizeCategory(r.Category),
		PurchasePrice:    0,
		PurchaseQuantity: purchaseQty,
		PurchaseUnit:     purchaseUnit,
		RecipeQuantity:   recipeQty,
		RecipeUnit:       costing.NormalizeUnit(r.RecipeUnit),
	}
}
