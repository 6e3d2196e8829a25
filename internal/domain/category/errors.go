package category

import (
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.ErrCategoryNotFound

	// ErrParentNotFound 父分类不存在
	ErrParentNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "父分类不存在")

	// ErrSlugDuplicate slug已存在
	ErrSlugDuplicate = apperrors.ErrSlugDuplicate

	// ErrCategoryCycle 父分类不能是自身或后代
	ErrCategoryCycle = apperrors.ErrCategoryCycle

	// ErrCategoryInUse 分类下仍有商品
	ErrCategoryInUse = apperrors.ErrCategoryInUse

	// ErrInvalidSortOrder 排序值不能为负
	ErrInvalidSortOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "排序值不能为负数")
)
