package store

// collection 按插入顺序保存记录，并以 ID 建立下标索引
type collection[T any] struct {
	items []T
	index map[string]int
	idOf  func(T) string
}

func newCollection[T any](idOf func(T) string) *collection[T] {
	return &collection[T]{
		index: make(map[string]int),
		idOf:  idOf,
	}
}

func (c *collection[T]) get(id string) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

func (c *collection[T]) has(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *collection[T]) append(v T) {
	c.index[c.idOf(v)] = len(c.items)
	c.items = append(c.items, v)
}

// replace 原位替换，保留插入位置
func (c *collection[T]) replace(v T) bool {
	i, ok := c.index[c.idOf(v)]
	if !ok {
		return false
	}
	c.items[i] = v
	return true
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.index[id]; !ok {
		return false
	}
	c.removeWhere(func(v T) bool { return c.idOf(v) == id })
	return true
}

// removeWhere 删除所有满足条件的记录，返回被删除记录的 ID（保持原顺序）
func (c *collection[T]) removeWhere(match func(T) bool) []string {
	var removed []string
	kept := c.items[:0]
	for _, v := range c.items {
		if match(v) {
			removed = append(removed, c.idOf(v))
			continue
		}
		kept = append(kept, v)
	}
	// 清理尾部残留引用
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	if len(removed) > 0 {
		c.reindex()
	}
	return removed
}

func (c *collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, v := range c.items {
		c.index[c.idOf(v)] = i
	}
}

func (c *collection[T]) len() int { return len(c.items) }

// list 返回浅拷贝切片；元素内含引用类型时由调用方负责深拷贝
func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
