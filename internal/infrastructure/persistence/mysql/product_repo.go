package mysql

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/baitboost/catalog/internal/domain/product"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 1. 商品、规格、图片作为一个聚合读写
// 2. 列表查询通过JOIN分类、品牌和规格表下推全部结构化条件
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	if err := dbFrom(ctx, r.db).Omit("Category", "Brand").Create(model).Error; err != nil {
		return translateProductError(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	for i := range model.Images {
		p.Images[i].ID = model.Images[i].ID
	}
	return nil
}

// Update 更新商品，图片和规格先删后插
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)

	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return translateProductError(err, "更新商品失败")
		}

		for _, table := range []any{&ProductImageModel{}, &ReelSpecModel{}, &RodSpecModel{}, &LureSpecModel{}} {
			if err := tx.Where("product_id = ?", model.ID).Delete(table).Error; err != nil {
				return apperrors.Wrap(err, "更新商品规格失败")
			}
		}

		children := []any{}
		if len(model.Images) > 0 {
			children = append(children, &model.Images)
		}
		if model.Reel != nil {
			children = append(children, model.Reel)
		}
		if model.Rod != nil {
			children = append(children, model.Rod)
		}
		if model.Lure != nil {
			children = append(children, model.Lure)
		}
		for _, child := range children {
			if err := tx.Create(child).Error; err != nil {
				return apperrors.Wrap(err, "更新商品规格失败")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.UpdatedAt = model.UpdatedAt
	for i := range model.Images {
		p.Images[i].ID = model.Images[i].ID
	}
	return nil
}

// Delete 删除商品，图片和规格一并删除
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).
		Select("Images", "Reel", "Rod", "Lure").
		Delete(&ProductModel{ID: id})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	var model ProductModel
	err := withAssociations(dbFrom(ctx, r.db)).
		Where("slug = ?", slug).
		First(&model).Error
	if err != nil {
		return nil, notFoundOr(err, product.ErrProductNotFound, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

func (r *productRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *productRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	return r.exists(ctx, "sku", sku, excludeID)
}

func (r *productRepository) exists(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&ProductModel{}).
		Where(column+" = ? AND id <> ?", value, excludeID).
		Count(&n).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询商品失败")
	}
	return n > 0, nil
}

// List 按条件查询商品
// 不分页时不单独COUNT，total等于返回条数
func (r *productRepository) List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	base := applyFilter(dbFrom(ctx, r.db).Model(&ProductModel{}), filter).Session(&gorm.Session{})

	var total int64
	if !filter.Unpaged() {
		if err := base.Count(&total).Error; err != nil {
			return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
		}
		if total == 0 {
			return []*product.Product{}, 0, nil
		}
	}

	query := withAssociations(base.Select("products.*")).Order(productOrder(filter.Ordering))
	if !filter.Unpaged() {
		query = query.Scopes(paginate(filter.Page, filter.PageSize))
	}

	var models []ProductModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	if filter.Unpaged() {
		total = int64(len(products))
	}
	return products, total, nil
}

// onSaleCondition 折扣价存在且低于原价
const onSaleCondition = "products.discount_price IS NOT NULL AND products.discount_price < products.price"

func (r *productRepository) Statistics(ctx context.Context) (*product.Statistics, error) {
	db := dbFrom(ctx, r.db)
	stats := &product.Statistics{}

	counts := []struct {
		dst   *int64
		where string
	}{
		{&stats.Total, ""},
		{&stats.InStock, "products.quantity > 0"},
		{&stats.OutOfStock, "products.quantity = 0"},
		{&stats.OnSale, onSaleCondition},
	}
	for _, c := range counts {
		q := db.Model(&ProductModel{})
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, apperrors.Wrap(err, "统计商品失败")
		}
	}

	err := db.Table("categories").
		Select("categories.name AS name, COUNT(products.id) AS count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("count DESC, name ASC").
		Scan(&stats.ByCategory).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按分类统计商品失败")
	}

	err = db.Table("brands").
		Select("brands.name AS name, COUNT(products.id) AS count").
		Joins("LEFT JOIN products ON products.brand_id = brands.id").
		Group("brands.id, brands.name").
		Order("count DESC, name ASC").
		Scan(&stats.ByBrand).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按品牌统计商品失败")
	}

	return stats, nil
}

// =========================================
// 查询构建
// =========================================

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Reel").
		Preload("Rod").
		Preload("Lure")
}

// applyFilter 把结构化条件翻译成JOIN和WHERE
func applyFilter(db *gorm.DB, f product.Filter) *gorm.DB {
	db = db.
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN brands ON brands.id = products.brand_id")

	switch f.Kind {
	case product.KindReel:
		db = db.Joins("JOIN reel_specs ON reel_specs.product_id = products.id")
	case product.KindRod:
		db = db.Joins("JOIN rod_specs ON rod_specs.product_id = products.id")
	case product.KindLure:
		db = db.Joins("JOIN lure_specs ON lure_specs.product_id = products.id")
	}
	if f.Kind != "" {
		db = db.Where("products.kind = ?", string(f.Kind))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		kw := likePattern(q)
		cond := "products.name LIKE @kw OR products.short_description LIKE @kw OR products.full_description LIKE @kw" +
			" OR products.sku LIKE @kw OR brands.name LIKE @kw OR categories.name LIKE @kw"
		if f.Kind == product.KindLure {
			cond += " OR lure_specs.target_species LIKE @kw"
		}
		db = db.Where("("+cond+")", map[string]any{"kw": kw})
	}
	if f.Name != "" {
		db = db.Where("products.name LIKE ?", likePattern(f.Name))
	}
	if len(f.Categories) > 0 {
		db = db.Where("categories.slug IN ?", f.Categories)
	}
	if len(f.Brands) > 0 {
		db = db.Where("brands.slug IN ?", f.Brands)
	}
	if f.PriceMin != nil {
		db = db.Where("products.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		db = db.Where("products.price <= ?", *f.PriceMax)
	}
	if f.OnSale != nil {
		if *f.OnSale {
			db = db.Where(onSaleCondition)
		} else {
			db = db.Where("NOT (" + onSaleCondition + ")")
		}
	}
	if f.Available != nil {
		if *f.Available {
			db = db.Where("products.quantity > 0")
		} else {
			db = db.Where("products.quantity = 0")
		}
	}
	if f.New != nil {
		db = db.Where("products.is_new = ?", *f.New)
	}
	if f.Used != nil {
		db = db.Where("products.used = ?", *f.Used)
	}
	if f.Featured != nil {
		db = db.Where("products.featured = ?", *f.Featured)
	}
	if f.Since != nil {
		db = db.Where("products.created_at >= ?", *f.Since)
	}

	if f.Kind == product.KindReel && f.Reel != nil {
		db = applyReelFilter(db, f.Reel)
	}
	if f.Kind == product.KindRod && f.Rod != nil {
		db = applyRodFilter(db, f.Rod)
	}
	if f.Kind == product.KindLure && f.Lure != nil {
		db = applyLureFilter(db, f.Lure)
	}
	return db
}

func applyReelFilter(db *gorm.DB, f *product.ReelFilter) *gorm.DB {
	if f.ReelType != "" {
		db = db.Where("reel_specs.reel_type = ?", string(f.ReelType))
	}
	if f.BearingsMin != nil {
		db = db.Where("reel_specs.bearings >= ?", *f.BearingsMin)
	}
	if f.BearingsMax != nil {
		db = db.Where("reel_specs.bearings <= ?", *f.BearingsMax)
	}
	if f.DragSystem != "" {
		db = db.Where("reel_specs.drag_system = ?", string(f.DragSystem))
	}
	if f.SpareSpool != nil {
		db = db.Where("reel_specs.spare_spool = ?", *f.SpareSpool)
	}
	if f.WeightMax != nil {
		db = db.Where("reel_specs.reel_weight <= ?", *f.WeightMax)
	}
	if f.DragMin != nil {
		db = db.Where("reel_specs.max_drag >= ?", *f.DragMin)
	}
	return db
}

func applyRodFilter(db *gorm.DB, f *product.RodFilter) *gorm.DB {
	if f.RodType != "" {
		db = db.Where("rod_specs.rod_type = ?", string(f.RodType))
	}
	if f.LengthMin != nil {
		db = db.Where("rod_specs.length >= ?", *f.LengthMin)
	}
	if f.LengthMax != nil {
		db = db.Where("rod_specs.length <= ?", *f.LengthMax)
	}
	if f.Action != "" {
		db = db.Where("rod_specs.rod_action = ?", string(f.Action))
	}
	if f.Material != "" {
		db = db.Where("rod_specs.material LIKE ?", likePattern(f.Material))
	}
	if f.ClosedLengthMax != nil {
		db = db.Where("rod_specs.closed_length <= ?", *f.ClosedLengthMax)
	}
	return db
}

func applyLureFilter(db *gorm.DB, f *product.LureFilter) *gorm.DB {
	if f.LureType != "" {
		db = db.Where("lure_specs.lure_type = ?", string(f.LureType))
	}
	if f.ArtificialCategory != "" {
		db = db.Where("lure_specs.artificial_category = ?", string(f.ArtificialCategory))
	}
	if f.LengthMin != nil {
		db = db.Where("lure_specs.lure_length >= ?", *f.LengthMin)
	}
	if f.LengthMax != nil {
		db = db.Where("lure_specs.lure_length <= ?", *f.LengthMax)
	}
	if f.WeightMin != nil {
		db = db.Where("lure_specs.lure_weight >= ?", *f.WeightMin)
	}
	if f.WeightMax != nil {
		db = db.Where("lure_specs.lure_weight <= ?", *f.WeightMax)
	}
	if f.Depth != "" {
		db = db.Where("lure_specs.working_depth LIKE ?", likePattern(f.Depth))
	}
	if f.Color != "" {
		db = db.Where("lure_specs.color LIKE ?", likePattern(f.Color))
	}
	if f.Floating != nil {
		db = db.Where("lure_specs.floating = ?", *f.Floating)
	}
	if f.Rattling != nil {
		db = db.Where("lure_specs.rattling = ?", *f.Rattling)
	}
	if f.TargetSpecies != "" {
		db = db.Where("lure_specs.target_species LIKE ?", likePattern(f.TargetSpecies))
	}
	return db
}

// orderColumns 排序字段 → 列，字段白名单由领域层校验
var orderColumns = map[string]string{
	"name":           "products.name",
	"price":          "products.price",
	"discount_price": "products.discount_price",
	"created_at":     "products.created_at",
	"quantity":       "products.quantity",
	"brand":          "brands.name",
	"category":       "categories.name",
	"bearings":       "reel_specs.bearings",
	"reel_weight":    "reel_specs.reel_weight",
	"max_drag":       "reel_specs.max_drag",
	"length":         "rod_specs.length",
	"closed_length":  "rod_specs.closed_length",
	"lure_length":    "lure_specs.lure_length",
	"lure_weight":    "lure_specs.lure_weight",
}

// productOrder "-price,name" → "products.price DESC, products.name ASC, products.id DESC"
func productOrder(ordering string) string {
	if ordering == "" {
		ordering = product.DefaultOrdering
	}

	var parts []string
	for _, field := range strings.Split(ordering, ",") {
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		if col, ok := orderColumns[field]; ok {
			parts = append(parts, col+" "+dir)
		}
	}
	// 相同排序值时保证分页稳定
	parts = append(parts, "products.id DESC")
	return strings.Join(parts, ", ")
}

func translateProductError(err error, msg string) error {
	switch {
	case isDuplicateError(err):
		if strings.Contains(strings.ToLower(duplicateKey(err)), "sku") {
			return product.ErrSKUDuplicate
		}
		return product.ErrSlugDuplicate
	case isForeignKeyError(err):
		return apperrors.ErrInvalidParams.WithMessage("分类或品牌不存在")
	}
	return apperrors.Wrap(err, msg)
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toProductModel(p *product.Product) *ProductModel {
	m := &ProductModel{
		ID:               p.ID,
		Kind:             string(p.Kind),
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		BrandID:          p.BrandID,
		ShortDescription: p.ShortDescription,
		FullDescription:  p.FullDescription,
		MainImageURL:     p.MainImageURL,
		Price:            p.Price,
		DiscountPrice:    nullDecimal(p.DiscountPrice),
		Quantity:         p.Quantity,
		Weight:           nullDecimal(p.Weight),
		Featured:         p.Featured,
		ForSale:          p.ForSale,
		IsNew:            p.IsNew,
		Used:             p.Used,
		Condition:        p.Condition,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	// 图片整体替换，始终作为新行插入
	for _, img := range p.Images {
		m.Images = append(m.Images, ProductImageModel{
			ProductID: p.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}

	if s := p.Reel; s != nil {
		m.Reel = &ReelSpecModel{
			ProductID:    p.ID,
			ReelType:     string(s.ReelType),
			BodyMaterial: s.BodyMaterial,
			Bearings:     s.Bearings,
			GearRatio:    s.GearRatio,
			ReelWeight:   nullDecimal(s.ReelWeight),
			LineCapacity: s.LineCapacity,
			MaxDrag:      nullDecimal(s.MaxDrag),
			DragSystem:   string(s.DragSystem),
			SpareSpool:   s.SpareSpool,
		}
	}
	if s := p.Rod; s != nil {
		m.Rod = &RodSpecModel{
			ProductID:     p.ID,
			RodType:       string(s.RodType),
			Length:        s.Length,
			Sections:      s.Sections,
			CastingWeight: s.CastingWeight,
			Action:        string(s.Action),
			Material:      s.Material,
			ClosedLength:  nullDecimal(s.ClosedLength),
			Guides:        s.Guides,
			ReelSeat:      s.ReelSeat,
		}
	}
	if s := p.Lure; s != nil {
		m.Lure = &LureSpecModel{
			ProductID:          p.ID,
			LureType:           string(s.LureType),
			ArtificialCategory: string(s.ArtificialCategory),
			LureLength:         nullDecimal(s.LureLength),
			LureWeight:         nullDecimal(s.LureWeight),
			WorkingDepth:       s.WorkingDepth,
			Color:              s.Color,
			Floating:           s.Floating,
			Rattling:           s.Rattling,
			Hooks:              s.Hooks,
			TargetSpecies:      s.TargetSpecies,
		}
	}
	return m
}

func toProductEntity(m *ProductModel) *product.Product {
	p := &product.Product{
		ID:               m.ID,
		Kind:             product.Kind(m.Kind),
		Name:             m.Name,
		Slug:             m.Slug,
		SKU:              m.SKU,
		CategoryID:       m.CategoryID,
		BrandID:          m.BrandID,
		ShortDescription: m.ShortDescription,
		FullDescription:  m.FullDescription,
		MainImageURL:     m.MainImageURL,
		Price:            m.Price,
		DiscountPrice:    decimalPtr(m.DiscountPrice),
		Quantity:         m.Quantity,
		Weight:           decimalPtr(m.Weight),
		Featured:         m.Featured,
		ForSale:          m.ForSale,
		IsNew:            m.IsNew,
		Used:             m.Used,
		Condition:        m.Condition,
		MetaTitle:        m.MetaTitle,
		MetaDescription:  m.MetaDescription,
		MetaKeywords:     m.MetaKeywords,
		Images:           make([]product.Image, 0, len(m.Images)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.Category.ID != 0 {
		p.Category = &product.Ref{ID: m.Category.ID, Name: m.Category.Name, Slug: m.Category.Slug}
	}
	if m.Brand.ID != 0 {
		p.Brand = &product.Ref{ID: m.Brand.ID, Name: m.Brand.Name, Slug: m.Brand.Slug}
	}

	for _, img := range m.Images {
		p.Images = append(p.Images, product.Image{
			ID:        img.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}

	if s := m.Reel; s != nil {
		p.Reel = &product.ReelSpec{
			ReelType:     product.ReelType(s.ReelType),
			BodyMaterial: s.BodyMaterial,
			Bearings:     s.Bearings,
			GearRatio:    s.GearRatio,
			ReelWeight:   decimalPtr(s.ReelWeight),
			LineCapacity: s.LineCapacity,
			MaxDrag:      decimalPtr(s.MaxDrag),
			DragSystem:   product.DragSystem(s.DragSystem),
			SpareSpool:   s.SpareSpool,
		}
	}
	if s := m.Rod; s != nil {
		p.Rod = &product.RodSpec{
			RodType:       product.RodType(s.RodType),
			Length:        s.Length,
			Sections:      s.Sections,
			CastingWeight: s.CastingWeight,
			Action:        product.RodAction(s.Action),
			Material:      s.Material,
			ClosedLength:  decimalPtr(s.ClosedLength),
			Guides:        s.Guides,
			ReelSeat:      s.ReelSeat,
		}
	}
	if s := m.Lure; s != nil {
		p.Lure = &product.LureSpec{
			LureType:           product.LureType(s.LureType),
			ArtificialCategory: product.ArtificialCategory(s.ArtificialCategory),
			LureLength:         decimalPtr(s.LureLength),
			LureWeight:         decimalPtr(s.LureWeight),
			WorkingDepth:       s.WorkingDepth,
			Color:              s.Color,
			Floating:           s.Floating,
			Rattling:           s.Rattling,
			Hooks:              s.Hooks,
			TargetSpecies:      s.TargetSpecies,
		}
	}
	return p
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
