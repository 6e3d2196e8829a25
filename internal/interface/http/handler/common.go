package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/baitboost/catalog/pkg/errors"
	"github.com/baitboost/catalog/pkg/response"
)

// bindError 参数绑定失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}

func slugParam(c *gin.Context) string {
	return c.Param("slug")
}
