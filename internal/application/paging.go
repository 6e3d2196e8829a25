// Package application 用例层共用的分页参数与结果
package application

import (
	"github.com/baitboost/catalog/internal/infrastructure/config"
)

// TimeLayout 响应中的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// MaxPage 页码上限，超过时按最后可表示的页处理（结果为空页）
// 保证(page-1)*pageSize在任何分页大小下都不会溢出
const MaxPage = 100000

// Paging 分页默认值与上限
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// NewPaging 从配置读取分页参数
func NewPaging(cfg *config.Config) Paging {
	return Paging{
		DefaultSize: cfg.Catalog.DefaultPageSize,
		MaxSize:     cfg.Catalog.MaxPageSize,
	}
}

// Normalize page默认1，pageSize默认DefaultSize，最大MaxSize
func (p Paging) Normalize(page, pageSize int) (int, int) {
	def, limit := p.DefaultSize, p.MaxSize
	if def <= 0 {
		def = 20
	}
	if limit <= 0 {
		limit = 100
	}

	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > limit {
		pageSize = limit
	}
	return page, pageSize
}

// Page 分页结果
type Page[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}

// Slice 在内存中取出第page页，page从1开始
// 先比较页数再相乘，page再大也不会溢出
func Slice[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return items[:0]
	}
	pages := len(items) / pageSize
	if len(items)%pageSize != 0 {
		pages++
	}
	if page > pages {
		return items[:0]
	}

	start := (page - 1) * pageSize
	if len(items)-start <= pageSize {
		return items[start:]
	}
	return items[start : start+pageSize]
}
