package recipe

import (
	"net/http"

	"bakery-pricing/internal/core/costing"

	"github.com/gin-gonic/gin"
)

// AddIngredientRequest 新增食材，分類預設為 dry
type AddIngredientRequest struct {
	Category costing.Category `json:"category"`
}

// AddIngredient 新增一筆預設食材
func (h *Handler) AddIngredient(c *gin.Context) {
	var req AddIngredientRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			fail(c, "請求格式無效", err)
			return
		}
	}

	category := costing.CategoryDry
	if req.Category != "" {
		parsed, err := costing.ParseCategory(string(req.Category))
		if err != nil {
			fail(c, "分類無效", validation(err))
			return
		}
		category = parsed
	}

	ing, err := h.svc.AddIngredient(c.Request.Context(), c.Param("name"), category)
	if err != nil {
		fail(c, "新增食材失敗", err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

// UpdateIngredient 部分更新食材
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var patch costing.IngredientPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, "請求格式無效", err)
		return
	}

	ing, err := h.svc.UpdateIngredient(c.Request.Context(), c.Param("name"), c.Param("id"), patch)
	if err != nil {
		fail(c, "更新食材失敗", err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// DeleteIngredient 刪除食材
func (h *Handler) DeleteIngredient(c *gin.Context) {
	if err := h.svc.RemoveIngredient(c.Request.Context(), c.Param("name"), c.Param("id")); err != nil {
		fail(c, "刪除食材失敗", err)
		return
	}
	c.Status(http.StatusNoContent)
}
