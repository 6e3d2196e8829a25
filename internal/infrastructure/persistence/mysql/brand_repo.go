package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/baitboost/catalog/internal/domain/brand"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// brandRepository 品牌仓储实现(MySQL)
type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储
func NewBrandRepository(db *gorm.DB) brand.Repository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, b *brand.Brand) error {
	model := toBrandModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateBrandError(err, "创建品牌失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *brandRepository) Update(ctx context.Context, b *brand.Brand) error {
	model := toBrandModel(b)
	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		return translateBrandError(err, "更新品牌失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&BrandModel{}, id)
	if result.Error != nil {
		return translateBrandError(result.Error, "删除品牌失败")
	}
	if result.RowsAffected == 0 {
		return brand.ErrBrandNotFound
	}
	return nil
}

func (r *brandRepository) FindByID(ctx context.Context, id uint) (*brand.Brand, error) {
	var model BrandModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, brand.ErrBrandNotFound, "查询品牌失败")
	}
	return toBrandEntity(&model), nil
}

func (r *brandRepository) FindBySlug(ctx context.Context, slug string) (*brand.Brand, error) {
	var model BrandModel
	if err := dbFrom(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, notFoundOr(err, brand.ErrBrandNotFound, "查询品牌失败")
	}
	return toBrandEntity(&model), nil
}

func (r *brandRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&BrandModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&n).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询品牌失败")
	}
	return n > 0, nil
}

func (r *brandRepository) List(ctx context.Context, params brand.ListParams) ([]*brand.Brand, int64, error) {
	query := dbFrom(ctx, r.db).Model(&BrandModel{})
	if params.Search != "" {
		kw := likePattern(params.Search)
		query = query.Where("name LIKE ? OR description LIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询品牌总数失败")
	}

	order := "name ASC"
	if params.Desc {
		order = "name DESC"
	}
	query = query.Order(order)
	if params.PageSize > 0 {
		query = query.Scopes(paginate(params.Page, params.PageSize))
	}

	var models []BrandModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询品牌列表失败")
	}

	brands := make([]*brand.Brand, len(models))
	for i := range models {
		brands[i] = toBrandEntity(&models[i])
	}
	return brands, total, nil
}

func (r *brandRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&ProductModel{}).Where("brand_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计品牌商品失败")
	}
	return n, nil
}

func translateBrandError(err error, msg string) error {
	switch {
	case isDuplicateError(err):
		return brand.ErrSlugDuplicate
	case isForeignKeyError(err):
		return brand.ErrBrandInUse
	}
	return apperrors.Wrap(err, msg)
}

func toBrandModel(b *brand.Brand) *BrandModel {
	return &BrandModel{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		WebsiteURL:  b.WebsiteURL,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBrandEntity(m *BrandModel) *brand.Brand {
	return &brand.Brand{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		WebsiteURL:  m.WebsiteURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
