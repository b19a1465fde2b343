package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError 依錯誤類型寫入 JSON 錯誤響應
func WriteError(c *gin.Context, err error) {
	status, resp := ToErrorResponse(err)
	resp.RequestID = c.Writer.Header().Get("X-Request-ID")
	c.AbortWithStatusJSON(status, resp)
}
