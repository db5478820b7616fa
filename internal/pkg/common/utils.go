package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError 依 CustomError 寫入錯誤響應並中止後續處理
func WriteError(c *gin.Context, err error) {
	ce := AsCustomError(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(gin.Mode() == gin.DebugMode))
}
