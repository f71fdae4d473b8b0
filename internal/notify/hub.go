package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Hub 展示层观察者：把变更事件扇出给实时订阅者（SSE 连接）
//
// 订阅者缓冲区写满时直接关闭该订阅，而不是跳过事件；
// 客户端重连后重新拉取数据即可恢复一致。
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	nextID uint64
	buffer int
	closed bool
	logger *zap.Logger
}

// NewHub 创建 Hub，buffer 为每个订阅者的事件缓冲大小
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		subs:   make(map[uint64]chan Event),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe 新建订阅，返回事件通道与取消函数
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[id] = ch

	return ch, func() { h.unsubscribe(id) }
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Notify 实现 Observer，非阻塞投递
func (h *Hub) Notify(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("订阅者缓冲区已满，断开订阅",
				zap.Uint64("subscriber", id),
				zap.Uint64("seq", ev.Seq),
			)
			delete(h.subs, id)
			close(ch)
		}
	}
}

// Len 当前订阅者数量
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close 关闭全部订阅，之后的 Subscribe 返回已关闭的通道
// 服务关闭时调用，使 SSE 长连接及时退出
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
