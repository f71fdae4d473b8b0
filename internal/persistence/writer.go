package persistence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/notify"
)

// 单次写入超时
const defaultWriteTimeout = 30 * time.Second

// AsyncWriter 持久化层观察者：Notify 只入队，由后台协程按事件顺序写入 Sink。
//
// 队列无上限，不丢弃事件，也不阻塞 store 的变更；
// 写入失败只记录日志，后续事件照常写入（每个事件都是完整快照，后写覆盖先写）。
type AsyncWriter struct {
	sink         Sink
	logger       *zap.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []notify.Event
	closed  bool
	lastSeq uint64 // 最近一次成功写入的事件序号
	failed  uint64 // 写入失败次数

	done chan struct{}
}

// WriterOption AsyncWriter 构造选项
type WriterOption func(*AsyncWriter)

// WithWriteTimeout 设置单次写入超时
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *AsyncWriter) { w.writeTimeout = d }
}

// NewAsyncWriter 创建并启动 AsyncWriter
func NewAsyncWriter(sink Sink, logger *zap.Logger, opts ...WriterOption) *AsyncWriter {
	w := &AsyncWriter{
		sink:         sink,
		logger:       logger.With(zap.String("sink", sink.Name())),
		writeTimeout: defaultWriteTimeout,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cond = sync.NewCond(&w.mu)

	go w.run()
	return w
}

// Notify 实现 notify.Observer
func (w *AsyncWriter) Notify(ev notify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Warn("写入器已关闭，忽略事件", zap.Uint64("seq", ev.Seq))
		return
	}
	w.queue = append(w.queue, ev)
	w.cond.Signal()
}

// Pending 尚未写入的事件数
func (w *AsyncWriter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// LastSeq 最近一次成功写入的事件序号
func (w *AsyncWriter) LastSeq() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeq
}

// Failed 写入失败次数
func (w *AsyncWriter) Failed() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed
}

// Close 停止接收新事件并等待队列写完；ctx 到期时返回 ctx.Err()，剩余事件放弃
func (w *AsyncWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Error("关闭超时，仍有事件未写入", zap.Int("pending", w.Pending()))
		return ctx.Err()
	}
}

// ── 内部辅助方法 ──

func (w *AsyncWriter) run() {
	defer close(w.done)

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		ev := w.queue[0]
		w.queue[0] = notify.Event{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.write(ev)
	}
}

func (w *AsyncWriter) write(ev notify.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	start := time.Now()
	if err := w.sink.Save(ctx, ev.Snapshot); err != nil {
		w.mu.Lock()
		w.failed++
		w.mu.Unlock()
		w.logger.Error("快照写入失败",
			zap.Uint64("seq", ev.Seq),
			zap.String("op", string(ev.Op)),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err),
		)
		return
	}

	w.mu.Lock()
	w.lastSeq = ev.Seq
	w.mu.Unlock()
	w.logger.Debug("快照已写入",
		zap.Uint64("seq", ev.Seq),
		zap.Duration("latency", time.Since(start)),
	)
}
