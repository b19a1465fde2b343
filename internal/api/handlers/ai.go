package handlers

import (
	"net/http"
	"strings"

	"bakery-pricing/internal/core/ai/service"
	"bakery-pricing/internal/core/bakery"
	"bakery-pricing/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImportRequest 食譜原文
type ImportRequest struct {
	Text string `json:"text"`
}

// ImportResponse 匯入的食材
type ImportResponse struct {
	Recipe      string      `json:"recipe"`
	Ingredients interface{} `json:"ingredients"`
	Count       int         `json:"count"`
}

// AIHandler AI 匯入處理器
type AIHandler struct {
	svc *bakery.Service
}

// NewAIHandler 創建 AI 處理器
func NewAIHandler(svc *bakery.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

// ImportRecipe 以 AI 解析食譜文字並附加到配方
func (h *AIHandler) ImportRecipe(c *gin.Context) {
	requestID := requestid.Get(c)
	name := c.Param("name")

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.NewValidationError("invalid request format"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		common.WriteError(c, common.NewValidationError("text is required"))
		return
	}

	common.LogInfo("開始處理食譜匯入",
		zap.String("request_id", requestID),
		zap.String("recipe", name),
		zap.Int("text_length", len(req.Text)),
	)

	ctx := service.WithRequestID(c.Request.Context(), requestID)
	ings, err := h.svc.ImportRecipe(ctx, name, req.Text)
	if err != nil {
		common.LogError("食譜匯入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("recipe", name),
		)
		_ = c.Error(err)
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Recipe:      name,
		Ingredients: ings,
		Count:       len(ings),
	})
}
