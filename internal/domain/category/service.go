package category

import (
	"context"
	"strings"

	"github.com/baitboost/catalog/internal/domain/shared"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

const (
	maxNameLen = 100
	maxSlugLen = 120

	// maxDepth 检查环时最多向上追溯的层数
	maxDepth = 64
)

// Service 分类领域服务接口
type Service interface {
	// Create 创建分类
	// 业务规则:
	// - 名称必填，不超过100字符
	// - slug为空时自动生成，必须唯一
	// - 父分类必须存在
	Create(ctx context.Context, in Input) (*Category, error)

	// Update 按slug更新分类
	// 业务规则:父分类不能是自身或自身的后代
	Update(ctx context.Context, slug string, in Input) (*Category, error)

	// Delete 按slug删除分类
	// 业务规则:分类下有商品时拒绝删除
	Delete(ctx context.Context, slug string) (*Category, error)

	GetBySlug(ctx context.Context, slug string) (*Category, error)

	List(ctx context.Context, params ListParams) ([]*Category, int64, error)

	// Children 按slug查询直接子分类
	Children(ctx context.Context, slug string) ([]*Category, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in Input) (*Category, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, in, 0)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		if _, err := s.parent(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}

	c := &Category{Slug: slug}
	c.Apply(in)
	c.CreatedAt = c.UpdatedAt

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, slug string, in Input) (*Category, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	newSlug, err := s.uniqueSlug(ctx, in, c.ID)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		if err := s.checkCycle(ctx, c.ID, *in.ParentID); err != nil {
			return nil, err
		}
	}

	c.Slug = newSlug
	c.Apply(in)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, slug string) (*Category, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountProducts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Category, int64, error) {
	field := strings.TrimPrefix(params.Ordering, "-")
	switch field {
	case "":
		params.Ordering = OrderBySortOrder
	case OrderBySortOrder, OrderByName:
	default:
		return nil, 0, apperrors.ErrInvalidParams.WithMessage("不支持的排序字段: " + params.Ordering)
	}
	return s.repo.List(ctx, params)
}

func (s *service) Children(ctx context.Context, slug string) ([]*Category, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.Children(ctx, c.ID)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

func validate(in Input) error {
	if err := shared.ValidateName(in.Name, maxNameLen); err != nil {
		return err
	}
	if in.SortOrder < 0 {
		return ErrInvalidSortOrder
	}
	return nil
}

// uniqueSlug 解析slug并检查是否被其他分类占用
func (s *service) uniqueSlug(ctx context.Context, in Input, selfID uint) (string, error) {
	slug, err := shared.ResolveSlug(in.Name, in.Slug, maxSlugLen)
	if err != nil {
		return "", err
	}
	taken, err := s.repo.ExistsBySlug(ctx, slug, selfID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugDuplicate
	}
	return slug, nil
}

func (s *service) parent(ctx context.Context, id uint) (*Category, error) {
	p, err := s.repo.FindByID(ctx, id)
	if apperrors.IsCode(err, apperrors.ErrCodeCategoryNotFound) {
		return nil, ErrParentNotFound
	}
	return p, err
}

// checkCycle 从新父分类向上追溯，遇到自身说明成环
func (s *service) checkCycle(ctx context.Context, selfID, parentID uint) error {
	id := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if id == selfID {
			return ErrCategoryCycle
		}
		p, err := s.parent(ctx, id)
		if err != nil {
			return err
		}
		if p.ParentID == nil {
			return nil
		}
		id = *p.ParentID
	}
	return ErrCategoryCycle
}
