// Package shared 目录各聚合共用的领域规则
package shared

import (
	"strings"

	"github.com/gosimple/slug"

	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// ResolveSlug 返回实体使用的slug
// raw为空时由name生成（"Canna Spinning 2,10m" → "canna-spinning-2-10m"）；
// 调用方显式给出的slug必须已经是合法格式
func ResolveSlug(name, raw string, maxLen int) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		s = slug.Make(name)
		if len(s) > maxLen {
			s = strings.TrimRight(s[:maxLen], "-")
		}
	}

	if s == "" || !slug.IsSlug(s) {
		return "", apperrors.ErrInvalidParams.WithMessage("slug格式不正确: " + raw)
	}
	if len(s) > maxLen {
		return "", apperrors.ErrInvalidParams.WithMessage("slug过长")
	}
	return s, nil
}

// ValidateName 名称必填且不超过maxLen个字符
func ValidateName(name string, maxLen int) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n == 0 {
		return apperrors.ErrInvalidParams.WithMessage("名称不能为空")
	}
	if n > maxLen {
		return apperrors.ErrInvalidParams.WithMessage("名称过长")
	}
	return nil
}
