package recipe

import (
	"net/http"

	"bakery-pricing/internal/core/bakery"
	"bakery-pricing/internal/core/costing"

	"github.com/gin-gonic/gin"
)

// Handler 配方處理程序
type Handler struct {
	svc *bakery.Service
}

// NewHandler 創建新的配方處理程序
func NewHandler(svc *bakery.Service) *Handler {
	return &Handler{svc: svc}
}

// ListRecipes 列出配方名稱
func (h *Handler) ListRecipes(c *gin.Context) {
	names, err := h.svc.RecipeNames(c.Request.Context())
	if err != nil {
		fail(c, "讀取配方清單失敗", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": names})
}

// GetRecipe 取得配方狀態與成本彙總
func (h *Handler) GetRecipe(c *gin.Context) {
	view, err := h.svc.Recipe(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, "讀取配方失敗", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSettings 更新批次產量、利潤率與人工
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req costing.Settings
	if err := bindJSON(c, &req); err != nil {
		fail(c, "請求格式無效", err)
		return
	}

	view, err := h.svc.UpdateSettings(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		fail(c, "更新批次設定失敗", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
