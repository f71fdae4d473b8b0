package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/api/middleware"
	"github.com/awieserg/Notes-Ibacy/internal/notify"
)

// Subscriber 变更事件订阅源
type Subscriber interface {
	Subscribe() (<-chan notify.Event, func())
}

// EventHandler 变更事件推送（SSE）
type EventHandler struct {
	subs Subscriber
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(subs Subscriber) *EventHandler {
	return &EventHandler{subs: subs}
}

// Stream 推送 store 变更事件，事件名固定为 change
// GET /api/v1/events
//
// 订阅被 Hub 关闭（客户端消费过慢）或客户端断开时结束推送
func (h *EventHandler) Stream(c *gin.Context) {
	ch, cancel := h.subs.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	sent := 0
	defer func() { middleware.MarkStreamed(c, sent) }()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			sent++
			return true
		case <-ctx.Done():
			return false
		}
	})
}
