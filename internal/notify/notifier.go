package notify

import (
	"sync"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// Op 变更操作类型
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Event 一次 store 变更对应的通知
//   - Seq 单调递增，从 1 开始
//   - Cascaded 为删除学生/课程时一并移除的成绩 ID
//   - Snapshot 为变更完成后的完整快照（独立副本）
type Event struct {
	Seq      uint64         `json:"seq"`
	Op       Op             `json:"op"`
	Kind     model.Kind     `json:"kind"`
	ID       string         `json:"id"`
	Cascaded []string       `json:"cascaded,omitempty"`
	Snapshot model.Snapshot `json:"-"`
}

// Observer 变更观察者
// Notify 在 store 的写临界区内同步调用，实现方不得阻塞，也不得回调 store
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc 函数适配器
type ObserverFunc func(ev Event)

// Notify 实现 Observer
func (f ObserverFunc) Notify(ev Event) { f(ev) }

// Notifier 分两层投递变更事件：先持久化层，再展示层，
// 保证持久化状态永远不落后于界面显示。
type Notifier struct {
	mu           sync.RWMutex
	persistence  []Observer
	presentation []Observer
	seq          uint64
}

// New 创建 Notifier
func New() *Notifier {
	return &Notifier{}
}

// RegisterPersistence 注册持久化观察者（按注册顺序投递）
func (n *Notifier) RegisterPersistence(o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.persistence = append(n.persistence, o)
}

// RegisterPresentation 注册展示层观察者（在全部持久化观察者之后投递）
func (n *Notifier) RegisterPresentation(o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.presentation = append(n.presentation, o)
}

// Publish 分配序号并同步投递事件，返回带序号的事件
// 调用方（store）需保证 Publish 串行调用，与变更顺序一致
func (n *Notifier) Publish(ev Event) Event {
	n.mu.Lock()
	n.seq++
	ev.Seq = n.seq
	persistence := n.persistence
	presentation := n.presentation
	n.mu.Unlock()

	for _, o := range persistence {
		o.Notify(ev)
	}
	for _, o := range presentation {
		o.Notify(ev)
	}
	return ev
}

// LastSeq 返回最近一次投递的序号
func (n *Notifier) LastSeq() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.seq
}
