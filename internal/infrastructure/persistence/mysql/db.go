package mysql

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/baitboost/catalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. GORM日志输出到zap，慢SQL按配置阈值告警
// 2. 配置连接池参数
// 3. auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:                 newGormLogger(cfg.Database, log),
		SkipDefaultTransaction: true, // 写操作需要事务时由TxManager显式开启
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 注意：生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&BrandModel{},
		&ProductModel{},
		&ProductImageModel{},
		&ReelSpecModel{},
		&RodSpecModel{},
		&LureSpecModel{},
	)
}

func newGormLogger(cfg config.DatabaseConfig, log *zap.Logger) logger.Interface {
	level := logger.Warn
	switch strings.ToLower(cfg.LogLevel) {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}

	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// CategoryModel GORM分类模型
// ParentID自关联，删除父分类时子分类的parent_id置空
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index;size:100;not null;comment:分类名称"`
	Slug        string         `gorm:"uniqueIndex;size:120;not null"`
	Description string         `gorm:"type:text"`
	ImageURL    string         `gorm:"size:500"`
	ParentID    *uint          `gorm:"index;comment:父分类ID"`
	Parent      *CategoryModel `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	SortOrder   int            `gorm:"index;not null;default:0;comment:排序，越小越靠前"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BrandModel GORM品牌模型
type BrandModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"index;size:100;not null"`
	Slug        string `gorm:"uniqueIndex;size:120;not null"`
	Description string `gorm:"type:text"`
	LogoURL     string `gorm:"size:500"`
	WebsiteURL  string `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BrandModel) TableName() string {
	return "brands"
}

// ProductModel GORM商品模型
// 1. 金额使用decimal(10,2)
// 2. 分类、品牌外键RESTRICT，仍有商品时无法删除
// 3. 图片、规格随商品级联删除
type ProductModel struct {
	ID               uint                `gorm:"primaryKey"`
	Kind             string              `gorm:"index;size:10;not null;comment:generic|reel|rod|lure"`
	Name             string              `gorm:"index;size:255;not null"`
	Slug             string              `gorm:"uniqueIndex;size:280;not null"`
	SKU              string              `gorm:"column:sku;uniqueIndex;size:50;not null"`
	CategoryID       uint                `gorm:"index;not null"`
	Category         CategoryModel       `gorm:"constraint:OnDelete:RESTRICT"`
	BrandID          uint                `gorm:"index;not null"`
	Brand            BrandModel          `gorm:"constraint:OnDelete:RESTRICT"`
	ShortDescription string              `gorm:"type:text;not null"`
	FullDescription  string              `gorm:"type:text"`
	MainImageURL     string              `gorm:"size:500"`
	Price            decimal.Decimal     `gorm:"index;type:decimal(10,2);not null"`
	DiscountPrice    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Quantity         int                 `gorm:"not null;default:0"`
	Weight           decimal.NullDecimal `gorm:"type:decimal(8,2);comment:重量(克)"`
	Featured         bool                `gorm:"index;not null"`
	ForSale          bool                `gorm:"not null"`
	IsNew            bool                `gorm:"not null"`
	Used             bool                `gorm:"not null"`
	Condition        string              `gorm:"column:item_condition;size:50"`
	MetaTitle        string              `gorm:"size:100"`
	MetaDescription  string              `gorm:"type:text"`
	MetaKeywords     string              `gorm:"size:255"`
	Images           []ProductImageModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reel             *ReelSpecModel      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rod              *RodSpecModel       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Lure             *LureSpecModel      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"index"`
	UpdatedAt        time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel 商品图片
type ProductImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	URL       string `gorm:"column:url;size:500;not null"`
	AltText   string `gorm:"size:200"`
	IsPrimary bool   `gorm:"not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

func (ProductImageModel) TableName() string {
	return "product_images"
}

// ReelSpecModel 渔轮规格，与商品一对一
type ReelSpecModel struct {
	ProductID    uint                `gorm:"primaryKey;autoIncrement:false"`
	ReelType     string              `gorm:"index;size:20;not null"`
	BodyMaterial string              `gorm:"size:100"`
	Bearings     *int                `gorm:"comment:轴承数"`
	GearRatio    string              `gorm:"size:20"`
	ReelWeight   decimal.NullDecimal `gorm:"type:decimal(7,2);comment:克"`
	LineCapacity string              `gorm:"size:100"`
	MaxDrag      decimal.NullDecimal `gorm:"type:decimal(5,2);comment:千克"`
	DragSystem   string              `gorm:"size:10"`
	SpareSpool   bool                `gorm:"not null"`
}

func (ReelSpecModel) TableName() string {
	return "reel_specs"
}

// RodSpecModel 鱼竿规格
// CastingWeight保存原始文本，按区间筛选在内存中完成
type RodSpecModel struct {
	ProductID     uint                `gorm:"primaryKey;autoIncrement:false"`
	RodType       string              `gorm:"index;size:20;not null"`
	Length        decimal.Decimal     `gorm:"type:decimal(4,2);not null;comment:米"`
	Sections      *int
	CastingWeight *string             `gorm:"size:50;comment:如10-30g"`
	Action        string              `gorm:"column:rod_action;size:20"`
	Material      string              `gorm:"size:100"`
	ClosedLength  decimal.NullDecimal `gorm:"type:decimal(6,2);comment:厘米"`
	Guides        *int
	ReelSeat      string              `gorm:"size:100"`
}

func (RodSpecModel) TableName() string {
	return "rod_specs"
}

// LureSpecModel 饵料规格
type LureSpecModel struct {
	ProductID          uint                `gorm:"primaryKey;autoIncrement:false"`
	LureType           string              `gorm:"index;size:20;not null"`
	ArtificialCategory string              `gorm:"size:20"`
	LureLength         decimal.NullDecimal `gorm:"type:decimal(5,2);comment:厘米"`
	LureWeight         decimal.NullDecimal `gorm:"type:decimal(6,2);comment:克"`
	WorkingDepth       *string             `gorm:"size:50;comment:如0-1m"`
	Color              string              `gorm:"size:50"`
	Floating           bool                `gorm:"not null"`
	Rattling           bool                `gorm:"not null"`
	Hooks              *int
	TargetSpecies      string              `gorm:"size:200"`
}

func (LureSpecModel) TableName() string {
	return "lure_specs"
}
