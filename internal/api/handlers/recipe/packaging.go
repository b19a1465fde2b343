package recipe

import (
	"net/http"

	"bakery-pricing/internal/core/costing"

	"github.com/gin-gonic/gin"
)

// AddPackaging 新增一筆包材，使用量預設為批次產量
func (h *Handler) AddPackaging(c *gin.Context) {
	item, err := h.svc.AddPackaging(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, "新增包材失敗", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdatePackaging 部分更新包材
func (h *Handler) UpdatePackaging(c *gin.Context) {
	var patch costing.PackagingPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, "請求格式無效", err)
		return
	}

	item, err := h.svc.UpdatePackaging(c.Request.Context(), c.Param("name"), c.Param("id"), patch)
	if err != nil {
		fail(c, "更新包材失敗", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePackaging 刪除包材
func (h *Handler) DeletePackaging(c *gin.Context) {
	if err := h.svc.RemovePackaging(c.Request.Context(), c.Param("name"), c.Param("id")); err != nil {
		fail(c, "刪除包材失敗", err)
		return
	}
	c.Status(http.StatusNoContent)
}
