package brand

import (
	"context"
	"net/url"
	"strings"

	"github.com/baitboost/catalog/internal/domain/shared"
)

const (
	maxNameLen = 100
	maxSlugLen = 120
)

// Service 品牌领域服务接口
type Service interface {
	// Create 创建品牌
	// 业务规则:
	// - 名称必填，不超过100字符
	// - slug唯一，为空时自动生成
	// - 官网地址必须是http(s)绝对地址
	Create(ctx context.Context, in Input) (*Brand, error)

	Update(ctx context.Context, slug string, in Input) (*Brand, error)

	// Delete 品牌下有商品时拒绝删除
	Delete(ctx context.Context, slug string) (*Brand, error)

	GetBySlug(ctx context.Context, slug string) (*Brand, error)

	List(ctx context.Context, params ListParams) ([]*Brand, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建品牌领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in Input) (*Brand, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, in, 0)
	if err != nil {
		return nil, err
	}

	b := &Brand{Slug: slug}
	b.Apply(in)
	b.CreatedAt = b.UpdatedAt

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, slug string, in Input) (*Brand, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	newSlug, err := s.uniqueSlug(ctx, in, b.ID)
	if err != nil {
		return nil, err
	}

	b.Slug = newSlug
	b.Apply(in)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, slug string) (*Brand, error) {
	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountProducts(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrBrandInUse
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Brand, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Brand, int64, error) {
	return s.repo.List(ctx, params)
}

func validate(in Input) error {
	if err := shared.ValidateName(in.Name, maxNameLen); err != nil {
		return err
	}
	if in.WebsiteURL != "" && !isWebURL(in.WebsiteURL) {
		return ErrInvalidWebsite
	}
	return nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

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
