package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const streamedEventsKey = "streamed_events"

// MarkStreamed 记录本次长连接推送的事件数，由 Logger 在连接结束时输出
func MarkStreamed(c *gin.Context, events int) {
	c.Set(streamedEventsKey, events)
}

// Logger 请求访问日志
//
// route 为匹配到的路由模板（/api/v1/students/:id），未匹配时为空；
// SSE 长连接在断开时才记录一次，附带推送的事件数
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("size", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		if _, streamed := c.Get(streamedEventsKey); streamed {
			fields = append(fields, zap.Int("events", c.GetInt(streamedEventsKey)))
			logger.Info("事件流结束", fields...)
			return
		}

		switch {
		case status >= 500:
			logger.Error("请求处理失败", fields...)
		case status >= 400:
			logger.Warn("客户端错误", fields...)
		default:
			logger.Info("请求完成", fields...)
		}
	}
}
