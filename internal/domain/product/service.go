package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baitboost/catalog/internal/domain/brand"
	"github.com/baitboost/catalog/internal/domain/category"
	"github.com/baitboost/catalog/internal/domain/shared"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

const (
	maxNameLen      = 255
	maxSlugLen      = 280
	maxSKULen       = 50
	maxConditionLen = 50
	maxMetaTitleLen = 100
	maxKeywordsLen  = 255
)

// maxPrice decimal(10,2)能表示的上限
var maxPrice = decimal.New(1, 8)

// CategoryFinder 商品服务需要的分类查询能力
type CategoryFinder interface {
	FindByID(ctx context.Context, id uint) (*category.Category, error)
}

// BrandFinder 商品服务需要的品牌查询能力
type BrandFinder interface {
	FindByID(ctx context.Context, id uint) (*brand.Brand, error)
}

// Service 商品领域服务接口
type Service interface {
	// Create 创建商品
	// 业务规则:
	// 1. 分类、品牌必须存在
	// 2. slug、SKU唯一，为空时自动生成
	// 3. 规格必须与Kind一致（rod只能带RodSpec）
	// 4. 价格>0，折扣价>=0，库存>=0
	Create(ctx context.Context, in Input) (*Product, error)

	// Update 按slug更新，kind非空时只更新该类型的商品
	Update(ctx context.Context, kind Kind, slug string, in Input) (*Product, error)

	Delete(ctx context.Context, kind Kind, slug string) (*Product, error)

	// GetBySlug kind非空时其他类型的商品视为不存在
	GetBySlug(ctx context.Context, kind Kind, slug string) (*Product, error)

	List(ctx context.Context, filter Filter) ([]*Product, int64, error)

	Statistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	repo       Repository
	categories CategoryFinder
	brands     BrandFinder
}

// NewService 创建商品领域服务
func NewService(repo Repository, categories CategoryFinder, brands BrandFinder) Service {
	return &service{repo: repo, categories: categories, brands: brands}
}

func (s *service) Create(ctx context.Context, in Input) (*Product, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	cat, br, err := s.refs(ctx, in)
	if err != nil {
		return nil, err
	}

	p := &Product{}
	if p.Slug, err = s.uniqueSlug(ctx, in, 0); err != nil {
		return nil, err
	}
	if p.SKU, err = s.uniqueSKU(ctx, in.SKU, cat.Name, br.Name, 0); err != nil {
		return nil, err
	}

	p.Apply(in)
	p.CreatedAt = p.UpdatedAt
	p.Category = &Ref{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	p.Brand = &Ref{ID: br.ID, Name: br.Name, Slug: br.Slug}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, kind Kind, slug string, in Input) (*Product, error) {
	p, err := s.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	if in.Kind == "" {
		in.Kind = p.Kind
	}
	if in.Kind != p.Kind {
		return nil, ErrKindMismatch.WithMessage("不能修改商品类型")
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	cat, br, err := s.refs(ctx, in)
	if err != nil {
		return nil, err
	}

	newSlug, err := s.uniqueSlug(ctx, in, p.ID)
	if err != nil {
		return nil, err
	}
	sku := in.SKU
	if sku == "" {
		sku = p.SKU
	}
	if sku, err = s.uniqueSKU(ctx, sku, cat.Name, br.Name, p.ID); err != nil {
		return nil, err
	}

	p.Slug = newSlug
	p.SKU = sku
	p.Apply(in)
	p.Category = &Ref{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	p.Brand = &Ref{ID: br.ID, Name: br.Name, Slug: br.Slug}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, slug string) (*Product, error) {
	p, err := s.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetBySlug(ctx context.Context, kind Kind, slug string) (*Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if kind != "" && p.Kind != kind {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Product, int64, error) {
	ordering, err := NormalizeOrdering(filter.Kind, filter.Ordering)
	if err != nil {
		return nil, 0, err
	}
	filter.Ordering = ordering
	return s.repo.List(ctx, filter)
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	return s.repo.Statistics(ctx)
}

// =========================================
// 辅助函数
// =========================================

func (s *service) refs(ctx context.Context, in Input) (*category.Category, *brand.Brand, error) {
	cat, err := s.categories.FindByID(ctx, in.CategoryID)
	if apperrors.IsCode(err, apperrors.ErrCodeCategoryNotFound) {
		return nil, nil, ErrCategoryNotFound.WithMessage(fmt.Sprintf("分类不存在: %d", in.CategoryID))
	}
	if err != nil {
		return nil, nil, err
	}
	br, err := s.brands.FindByID(ctx, in.BrandID)
	if apperrors.IsCode(err, apperrors.ErrCodeBrandNotFound) {
		return nil, nil, ErrBrandNotFound.WithMessage(fmt.Sprintf("品牌不存在: %d", in.BrandID))
	}
	if err != nil {
		return nil, nil, err
	}
	return cat, br, nil
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

// uniqueSKU 校验给定的SKU，为空时生成新SKU
func (s *service) uniqueSKU(ctx context.Context, sku, categoryName, brandName string, selfID uint) (string, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		sku = GenerateSKU(brandName, categoryName, uuid.NewString())
	}
	if len([]rune(sku)) > maxSKULen {
		return "", apperrors.ErrInvalidParams.WithMessage("SKU过长")
	}

	taken, err := s.repo.ExistsBySKU(ctx, sku, selfID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSKUDuplicate
	}
	return sku, nil
}

// GenerateSKU 品牌前3位 + 分类前3位 + "-" + 随机串前8位，前缀大写
//
//	GenerateSKU("Daiwa", "Mulinelli", "3f2a...") // "DAIMUL-3f2a..."
func GenerateSKU(brandName, categoryName, random string) string {
	return strings.ToUpper(prefix(brandName, 3)+prefix(categoryName, 3)) + "-" + prefix(random, 8)
}

func prefix(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// Validate 校验商品输入
func Validate(in Input) error {
	if !in.Kind.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的商品类型: " + string(in.Kind))
	}
	if err := shared.ValidateName(in.Name, maxNameLen); err != nil {
		return err
	}
	if strings.TrimSpace(in.ShortDescription) == "" {
		return apperrors.ErrInvalidParams.WithMessage("简短描述不能为空")
	}
	if in.CategoryID == 0 || in.BrandID == 0 {
		return apperrors.ErrInvalidParams.WithMessage("分类和品牌必填")
	}

	if !in.Price.IsPositive() || in.Price.GreaterThanOrEqual(maxPrice) {
		return ErrInvalidPrice
	}
	if in.DiscountPrice != nil && (in.DiscountPrice.IsNegative() || in.DiscountPrice.GreaterThanOrEqual(maxPrice)) {
		return ErrInvalidDiscount
	}
	if in.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if negative(in.Weight) {
		return apperrors.ErrInvalidParams.WithMessage("重量不能为负数")
	}

	switch {
	case tooLong(in.Condition, maxConditionLen):
		return apperrors.ErrInvalidParams.WithMessage("成色描述过长")
	case tooLong(in.MetaTitle, maxMetaTitleLen):
		return apperrors.ErrInvalidParams.WithMessage("meta标题过长")
	case tooLong(in.MetaKeywords, maxKeywordsLen):
		return apperrors.ErrInvalidParams.WithMessage("meta关键词过长")
	}

	for _, img := range in.Images {
		if strings.TrimSpace(img.URL) == "" {
			return apperrors.ErrInvalidParams.WithMessage("图片地址不能为空")
		}
	}

	return validateSpec(in)
}

// validateSpec 规格必须和类型匹配，且只能有一个
func validateSpec(in Input) error {
	present := map[Kind]bool{
		KindReel: in.Reel != nil,
		KindRod:  in.Rod != nil,
		KindLure: in.Lure != nil,
	}
	for k, ok := range present {
		if ok && k != in.Kind {
			return ErrKindMismatch.WithMessage("规格与商品类型不一致: " + string(k))
		}
	}

	switch in.Kind {
	case KindReel:
		if in.Reel == nil {
			return ErrKindMismatch.WithMessage("缺少渔轮规格")
		}
		return validateReel(in.Reel)
	case KindRod:
		if in.Rod == nil {
			return ErrKindMismatch.WithMessage("缺少鱼竿规格")
		}
		return validateRod(in.Rod)
	case KindLure:
		if in.Lure == nil {
			return ErrKindMismatch.WithMessage("缺少饵料规格")
		}
		return validateLure(in.Lure)
	}
	return nil
}

func validateReel(r *ReelSpec) error {
	if !r.ReelType.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的渔轮类型: " + string(r.ReelType))
	}
	if r.DragSystem != "" && !r.DragSystem.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的卸力系统: " + string(r.DragSystem))
	}
	if negativeInt(r.Bearings) || negative(r.ReelWeight) || negative(r.MaxDrag) {
		return apperrors.ErrInvalidParams.WithMessage("渔轮规格数值不能为负数")
	}
	return nil
}

func validateRod(r *RodSpec) error {
	if !r.RodType.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的鱼竿类型: " + string(r.RodType))
	}
	if r.Action != "" && !r.Action.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的调性: " + string(r.Action))
	}
	if !r.Length.IsPositive() {
		return apperrors.ErrInvalidParams.WithMessage("鱼竿长度必须大于0")
	}
	if negativeInt(r.Sections) || negativeInt(r.Guides) || negative(r.ClosedLength) {
		return apperrors.ErrInvalidParams.WithMessage("鱼竿规格数值不能为负数")
	}
	return nil
}

func validateLure(l *LureSpec) error {
	if !l.LureType.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的饵料类型: " + string(l.LureType))
	}
	if l.ArtificialCategory != "" && !l.ArtificialCategory.Valid() {
		return apperrors.ErrInvalidEnum.WithMessage("非法的假饵类别: " + string(l.ArtificialCategory))
	}
	if negative(l.LureLength) || negative(l.LureWeight) || negativeInt(l.Hooks) {
		return apperrors.ErrInvalidParams.WithMessage("饵料规格数值不能为负数")
	}
	return nil
}

func negative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func negativeInt(n *int) bool {
	return n != nil && *n < 0
}

func tooLong(s string, n int) bool {
	return len([]rune(s)) > n
}
