package brand

import (
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// 品牌领域错误定义
var (
	ErrBrandNotFound = apperrors.ErrBrandNotFound

	ErrSlugDuplicate = apperrors.ErrSlugDuplicate

	// ErrBrandInUse 品牌下仍有商品
	ErrBrandInUse = apperrors.ErrBrandInUse

	// ErrInvalidWebsite 官网地址格式错误
	ErrInvalidWebsite = apperrors.New(apperrors.ErrCodeInvalidParams, "官网地址格式不正确")
)
