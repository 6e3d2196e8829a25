package product

import (
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound = apperrors.ErrProductNotFound

	ErrSlugDuplicate = apperrors.ErrSlugDuplicate

	ErrSKUDuplicate = apperrors.ErrSKUDuplicate

	// ErrKindMismatch 规格与商品类型不一致
	ErrKindMismatch = apperrors.ErrKindMismatch

	ErrCategoryNotFound = apperrors.ErrCategoryNotFound

	ErrBrandNotFound = apperrors.ErrBrandNotFound

	// ErrInvalidPrice 价格必须大于0
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidDiscount 折扣价不能为负数
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣价不能为负数")

	// ErrInvalidQuantity 库存不能为负数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")
)
