package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/baitboost/catalog/internal/domain/category"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateCategoryError(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := dbFrom(ctx, r.db).Omit("Parent").Save(model).Error; err != nil {
		return translateCategoryError(err, "更新分类失败")
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 先把子分类挂到顶级，再删除分类
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&CategoryModel{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "解除子分类失败")
		}

		result := tx.Delete(&CategoryModel{}, id)
		if result.Error != nil {
			return translateCategoryError(result.Error, "删除分类失败")
		}
		if result.RowsAffected == 0 {
			return category.ErrCategoryNotFound
		}
		return nil
	})
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, category.ErrCategoryNotFound, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, notFoundOr(err, category.ErrCategoryNotFound, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&CategoryModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&n).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询分类失败")
	}
	return n > 0, nil
}

func (r *categoryRepository) List(ctx context.Context, params category.ListParams) ([]*category.Category, int64, error) {
	query := dbFrom(ctx, r.db).Model(&CategoryModel{})

	if params.Search != "" {
		kw := likePattern(params.Search)
		query = query.Where("name LIKE ? OR description LIKE ?", kw, kw)
	}
	switch {
	case params.ParentID != nil:
		query = query.Where("parent_id = ?", *params.ParentID)
	case params.RootOnly:
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}

	query = query.Order(categoryOrder(params.Ordering))
	if params.PageSize > 0 {
		query = query.Scopes(paginate(params.Page, params.PageSize))
	}

	var models []CategoryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}
	return toCategoryEntities(models), total, nil
}

func (r *categoryRepository) Children(ctx context.Context, parentID uint) ([]*category.Category, error) {
	var models []CategoryModel
	err := dbFrom(ctx, r.db).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询子分类失败")
	}
	return toCategoryEntities(models), nil
}

func (r *categoryRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&ProductModel{}).Where("category_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类商品失败")
	}
	return n, nil
}

// categoryOrder 排序字段已由领域服务校验
func categoryOrder(ordering string) string {
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
	}
	if strings.TrimPrefix(ordering, "-") == category.OrderByName {
		return "name " + dir
	}
	return "sort_order " + dir + ", name ASC"
}

func translateCategoryError(err error, msg string) error {
	switch {
	case isDuplicateError(err):
		return category.ErrSlugDuplicate
	case isForeignKeyError(err):
		return category.ErrCategoryInUse
	}
	return apperrors.Wrap(err, msg)
}

// notFoundOr 记录不存在时返回notFound，其他错误包装成内部错误
func notFoundOr(err error, notFound *apperrors.AppError, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(err, msg)
}

func toCategoryModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		ParentID:    m.ParentID,
		SortOrder:   m.SortOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCategoryEntities(models []CategoryModel) []*category.Category {
	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out
}
