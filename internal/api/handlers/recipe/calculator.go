package recipe

import (
	"net/http"

	"bakery-pricing/internal/core/bakery"
	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ParseQuantityRequest 數量表達式
type ParseQuantityRequest struct {
	Input string `json:"input"`
}

// UnitInfo 單位資訊
type UnitInfo struct {
	Code   costing.Unit   `json:"code"`
	Label  string         `json:"label"`
	Family costing.Family `json:"family"`
	Factor *float64       `json:"factor"`
}

// Calculate 無狀態計算：請求體為配方狀態，回傳彙總
func Calculate(c *gin.Context) {
	var state costing.RecipeState
	if err := bindJSON(c, &state); err != nil {
		fail(c, "請求格式無效", err)
		return
	}
	c.JSON(http.StatusOK, bakery.Calculate(state.Migrate()))
}

// ParseQuantity 解析數量表達式；無法解析時為 0
func ParseQuantity(c *gin.Context) {
	var req ParseQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, "請求格式無效", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": costing.ParseQuantity(req.Input)})
}

// ListUnits 列出支援的單位；pcs 沒有換算係數
func ListUnits(c *gin.Context) {
	units := costing.Units()
	out := make([]UnitInfo, 0, len(units))
	for _, u := range units {
		info := UnitInfo{Code: u, Label: u.Label(), Family: u.Family()}
		if f, ok := u.Factor(); ok {
			info.Factor = &f
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, gin.H{"units": out})
}

func validation(err error) error {
	return common.NewValidationError(err.Error())
}
