package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeCategoryNotFound = 40401 // 分类不存在
	ErrCodeBrandNotFound    = 40402 // 品牌不存在
	ErrCodeProductNotFound  = 40403 // 商品不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError  = 40000 // 业务错误(通用)
	ErrCodeSlugDuplicate  = 40001 // slug已存在
	ErrCodeSKUDuplicate   = 40002 // SKU已存在
	ErrCodeCategoryInUse  = 40003 // 分类下仍有商品
	ErrCodeBrandInUse     = 40004 // 品牌下仍有商品
	ErrCodeCategoryCycle  = 40005 // 分类层级成环
	ErrCodeKindMismatch   = 40006 // 商品类型不匹配
	ErrCodeDuplicateEntry = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams    = 40900 // 参数错误
	ErrCodeBindError        = 40901 // 参数绑定失败
	ErrCodeInvalidThreshold = 40902 // 区间筛选阈值非法
	ErrCodeInvalidEnum      = 40903 // 枚举值非法
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 资源不存在
	ErrNotFound         = New(ErrCodeNotFound, "资源不存在")
	ErrCategoryNotFound = New(ErrCodeCategoryNotFound, "分类不存在")
	ErrBrandNotFound    = New(ErrCodeBrandNotFound, "品牌不存在")
	ErrProductNotFound  = New(ErrCodeProductNotFound, "商品不存在")

	// 业务规则
	ErrSlugDuplicate = New(ErrCodeSlugDuplicate, "slug已存在")
	ErrSKUDuplicate  = New(ErrCodeSKUDuplicate, "SKU已存在")
	ErrCategoryInUse = New(ErrCodeCategoryInUse, "分类下仍有商品，无法删除")
	ErrBrandInUse    = New(ErrCodeBrandInUse, "品牌下仍有商品，无法删除")
	ErrCategoryCycle = New(ErrCodeCategoryCycle, "父分类不能是自身或其子分类")
	ErrKindMismatch  = New(ErrCodeKindMismatch, "商品类型不匹配")

	// 参数错误
	ErrInvalidParams    = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError        = New(ErrCodeBindError, "参数格式错误")
	ErrInvalidThreshold = New(ErrCodeInvalidThreshold, "区间筛选阈值格式错误")
	ErrInvalidEnum      = New(ErrCodeInvalidEnum, "枚举值非法")
)

// =========================================
// 辅助函数
// =========================================

// WithMessage 复制一个错误码相同、提示不同的AppError
// 预定义错误是共享实例，不能直接修改Message
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// IsCode 判断错误链中是否有指定错误码的AppError
func IsCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
