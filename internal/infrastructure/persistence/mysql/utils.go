package mysql

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError 判断是否为外键约束错误
// MySQL错误码 1451: 被引用的行不能删除; 1452: 引用的行不存在
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1451") || strings.Contains(msg, "Error 1452") ||
		strings.Contains(msg, "foreign key constraint fails")
}

// duplicateKey 从唯一索引冲突错误中取出索引名
func duplicateKey(err error) string {
	msg := err.Error()
	i := strings.LastIndex(msg, "for key '")
	if i < 0 {
		return ""
	}
	key := msg[i+len("for key '"):]
	return strings.TrimSuffix(strings.TrimSpace(key), "'")
}

// likePattern 转义LIKE通配符，得到"包含"匹配模式
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// maxOffset 超过时直接返回空结果，避免(page-1)*pageSize溢出成负数后被GORM忽略
const maxOffset = math.MaxInt32

// paginate 分页，page从1开始
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize > 0 && page-1 > maxOffset/pageSize {
			return db.Where("1 = 0")
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
