package mysql

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/baitboost/catalog/internal/domain/product"
)

// newDryRunDB 只生成SQL，不连接数据库
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "test:test@tcp(127.0.0.1:3306)/baitboost?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func listSQL(db *gorm.DB, f product.Filter) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []ProductModel
		return applyFilter(tx.Model(&ProductModel{}), f).
			Select("products.*").
			Order(productOrder(f.Ordering)).
			Find(&models)
	})
}

func TestApplyFilter_Base(t *testing.T) {
	db := newDryRunDB(t)
	yes := true
	priceMin := decimal.RequireFromString("50")

	sql := listSQL(db, product.Filter{
		Query:      "shimano",
		Categories: []string{"mulinelli"},
		Brands:     []string{"shimano", "daiwa"},
		PriceMin:   &priceMin,
		OnSale:     &yes,
		Available:  &yes,
	})

	assert.Contains(t, sql, "JOIN categories ON categories.id = products.category_id")
	assert.Contains(t, sql, "JOIN brands ON brands.id = products.brand_id")
	assert.Contains(t, sql, "products.sku LIKE '%shimano%'")
	assert.Contains(t, sql, "categories.name LIKE '%shimano%'")
	assert.Contains(t, sql, "categories.slug IN ('mulinelli')")
	assert.Contains(t, sql, "brands.slug IN ('shimano','daiwa')")
	assert.Contains(t, sql, "products.price >=")
	assert.Contains(t, sql, onSaleCondition)
	assert.Contains(t, sql, "products.quantity > 0")
	assert.NotContains(t, sql, "reel_specs")
	assert.Contains(t, sql, "ORDER BY products.created_at DESC, products.id DESC")
}

func TestApplyFilter_NotOnSale(t *testing.T) {
	no := false
	sql := listSQL(newDryRunDB(t), product.Filter{OnSale: &no, Available: &no})
	assert.Contains(t, sql, "NOT ("+onSaleCondition+")")
	assert.Contains(t, sql, "products.quantity = 0")
}

// TestStatistics_OnSaleMatchesFilter 统计的在售数与on_sale筛选使用同一条件
// 折扣价等于或高于原价的商品不计入
func TestStatistics_OnSaleMatchesFilter(t *testing.T) {
	db := newDryRunDB(t)
	var counts []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		if sql := tx.Statement.SQL.String(); strings.HasPrefix(sql, "SELECT count(*)") {
			counts = append(counts, sql)
		}
	}))

	// DryRun不支持Scan，分类聚合处会返回错误，前面的计数已经生成
	_, _ = NewProductRepository(db).Statistics(context.Background())

	require.Len(t, counts, 4)
	assert.Contains(t, counts[3], onSaleCondition)
	assert.Contains(t, listSQL(db, product.Filter{OnSale: boolPtr(true)}), onSaleCondition)
}

func boolPtr(b bool) *bool { return &b }

func TestApplyFilter_Kinds(t *testing.T) {
	db := newDryRunDB(t)
	four := 4
	yes := true

	reel := listSQL(db, product.Filter{
		Kind:     product.KindReel,
		Reel:     &product.ReelFilter{ReelType: product.ReelSpinning, BearingsMin: &four, SpareSpool: &yes},
		Ordering: "-bearings",
	})
	assert.Contains(t, reel, "JOIN reel_specs ON reel_specs.product_id = products.id")
	assert.Contains(t, reel, "products.kind = 'reel'")
	assert.Contains(t, reel, "reel_specs.reel_type = 'SPINNING'")
	assert.Contains(t, reel, "reel_specs.bearings >= 4")
	assert.Contains(t, reel, "ORDER BY reel_specs.bearings DESC")

	rod := listSQL(db, product.Filter{
		Kind: product.KindRod,
		Rod:  &product.RodFilter{Action: product.ActionMedium, Material: "carbon"},
	})
	assert.Contains(t, rod, "rod_specs.rod_action = 'MEDIUM'")
	assert.Contains(t, rod, "rod_specs.material LIKE '%carbon%'")
	assert.NotContains(t, rod, "casting_weight", "抛投重量不下推到数据库")

	lure := listSQL(db, product.Filter{
		Kind:  product.KindLure,
		Query: "spigola",
		Lure:  &product.LureFilter{Color: "red", Floating: &yes},
	})
	assert.Contains(t, lure, "lure_specs.target_species LIKE '%spigola%'")
	assert.Contains(t, lure, "lure_specs.color LIKE '%red%'")
	assert.Contains(t, lure, "lure_specs.floating = true")
}

func TestApplyFilter_SpecFilterIgnoredForOtherKind(t *testing.T) {
	sql := listSQL(newDryRunDB(t), product.Filter{
		Kind: product.KindRod,
		Reel: &product.ReelFilter{ReelType: product.ReelFly},
	})
	assert.NotContains(t, sql, "reel_specs")
}

func TestProductOrder(t *testing.T) {
	assert.Equal(t, "products.created_at DESC, products.id DESC", productOrder(""))
	assert.Equal(t, "products.price ASC, brands.name DESC, products.id DESC", productOrder("price,-brand"))
	assert.Equal(t, "products.id DESC", productOrder("unknown"))
}

func TestPaginate(t *testing.T) {
	db := newDryRunDB(t)
	pageSQL := func(page, size int) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var models []ProductModel
			return tx.Model(&ProductModel{}).Scopes(paginate(page, size)).Find(&models)
		})
	}

	assert.Contains(t, pageSQL(2, 20), "LIMIT 20 OFFSET 20")
	assert.Contains(t, pageSQL(0, 20), "LIMIT 20")
	assert.NotContains(t, pageSQL(0, 20), "OFFSET")

	huge := pageSQL(math.MaxInt64/50, 100)
	assert.Contains(t, huge, "1 = 0", "页码过大时返回空页而不是第一页")
	assert.NotContains(t, huge, "OFFSET")
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%10\\%%", likePattern("10%"))
	assert.Equal(t, "%a\\_b%", likePattern(" a_b "))
}

func TestErrorClassification(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry 'ABC' for key 'products.idx_products_sku'")
	assert.True(t, isDuplicateError(dup))
	assert.Equal(t, "products.idx_products_sku", duplicateKey(dup))
	assert.ErrorIs(t, translateProductError(dup, "x"), product.ErrSKUDuplicate)

	slugDup := errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'products.idx_products_slug'")
	assert.ErrorIs(t, translateProductError(slugDup, "x"), product.ErrSlugDuplicate)

	fk := errors.New("Error 1451 (23000): Cannot delete or update a parent row: a foreign key constraint fails")
	assert.True(t, isForeignKeyError(fk))
	assert.False(t, isForeignKeyError(nil))
	assert.False(t, isDuplicateError(gorm.ErrRecordNotFound))
}

func TestProductModelConversion(t *testing.T) {
	discount := decimal.RequireFromString("79.90")
	cw := "10-30g"
	guides := 9
	now := time.Now()

	p := &product.Product{
		ID:            12,
		Kind:          product.KindRod,
		Name:          "Zodias",
		Slug:          "zodias",
		SKU:           "SHICAN-12345678",
		CategoryID:    1,
		BrandID:       2,
		Price:         decimal.RequireFromString("99.90"),
		DiscountPrice: &discount,
		Quantity:      3,
		ForSale:       true,
		Images:        []product.Image{{ID: 5, URL: "https://img/1.jpg", IsPrimary: true}},
		Rod: &product.RodSpec{
			RodType:       product.RodSpinning,
			Length:        decimal.RequireFromString("2.13"),
			CastingWeight: &cw,
			Guides:        &guides,
		},
		CreatedAt: now,
	}

	m := toProductModel(p)
	assert.Equal(t, "rod", m.Kind)
	assert.True(t, m.DiscountPrice.Valid)
	assert.False(t, m.Weight.Valid)
	require.Len(t, m.Images, 1)
	assert.Zero(t, m.Images[0].ID, "图片作为新行插入")
	assert.Equal(t, uint(12), m.Rod.ProductID)
	assert.Nil(t, m.Reel)

	m.Category = CategoryModel{ID: 1, Name: "Canne", Slug: "canne"}
	back := toProductEntity(m)
	assert.Equal(t, p.Slug, back.Slug)
	assert.True(t, back.DiscountPrice.Equal(discount))
	assert.Nil(t, back.Weight)
	assert.Equal(t, "10-30g", *back.CastingWeight())
	assert.Equal(t, "canne", back.Category.Slug)
	assert.Nil(t, back.Brand, "未预加载的品牌为nil")
	assert.Equal(t, 20, int(back.DiscountPercent()))
}
