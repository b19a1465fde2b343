package recipe

import (
	"errors"
	"io"

	"bakery-pricing/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bindJSON 解析請求體，失敗時回傳驗證錯誤
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("request body is required")
		}
		return common.NewValidationError("invalid request format: " + err.Error())
	}
	return nil
}

// fail 記錄並寫出錯誤響應
func fail(c *gin.Context, msg string, err error) {
	common.LogWarn(msg,
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", requestid.Get(c)),
	)
	_ = c.Error(err)
	common.WriteError(c, err)
}
