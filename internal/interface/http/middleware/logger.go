package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/pkg/logger"
)

// RequestIDHeader 请求ID头部
const RequestIDHeader = "X-Request-ID"

// slowRequest 超过该耗时记录警告
const slowRequest = 3 * time.Second

// Logger 请求日志中间件
// 1. 沿用客户端传入的X-Request-ID，没有时生成uuid
// 2. 带request_id的logger放入请求context，后续各层用logger.FromContext取用
// 3. 请求结束后记录方法、路径、状态码、耗时、客户端IP
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		l := base.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			l.Error("request", fields...)
		case latency > slowRequest:
			l.Warn("slow request", fields...)
		default:
			l.Info("request", fields...)
		}
	}
}

// Recovery panic恢复，返回统一的错误响应
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(500, gin.H{"code": 50000, "message": "系统内部错误"})
	})
}
