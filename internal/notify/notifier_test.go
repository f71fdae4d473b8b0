package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifier_PersistenceBeforePresentation(t *testing.T) {
	n := New()
	var order []string

	// 先注册展示层，验证投递顺序不依赖注册先后
	n.RegisterPresentation(ObserverFunc(func(ev Event) { order = append(order, "ui-1") }))
	n.RegisterPersistence(ObserverFunc(func(ev Event) { order = append(order, "disk-1") }))
	n.RegisterPresentation(ObserverFunc(func(ev Event) { order = append(order, "ui-2") }))
	n.RegisterPersistence(ObserverFunc(func(ev Event) { order = append(order, "disk-2") }))

	n.Publish(Event{Op: OpCreated, ID: "x"})

	assert.Equal(t, []string{"disk-1", "disk-2", "ui-1", "ui-2"}, order)
}

func TestNotifier_SequenceIsMonotonic(t *testing.T) {
	n := New()
	var seqs []uint64
	n.RegisterPersistence(ObserverFunc(func(ev Event) { seqs = append(seqs, ev.Seq) }))

	for i := 0; i < 5; i++ {
		ev := n.Publish(Event{Op: OpUpdated})
		assert.Equal(t, uint64(i+1), ev.Seq)
	}

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seqs)
	assert.Equal(t, uint64(5), n.LastSeq())
}

func TestHub_FanOut(t *testing.T) {
	h := NewHub(4, zap.NewNop())
	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Notify(Event{Seq: 1})
	assert.Equal(t, uint64(1), (<-ch1).Seq)
	assert.Equal(t, uint64(1), (<-ch2).Seq)

	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, h.Len())

	// 重复取消不应 panic
	cancel1()
}

func TestHub_SlowSubscriberIsDisconnected(t *testing.T) {
	h := NewHub(2, zap.NewNop())
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Notify(Event{Seq: 1})
	h.Notify(Event{Seq: 2})
	h.Notify(Event{Seq: 3})

	var got []uint64
	for ev := range ch {
		got = append(got, ev.Seq)
	}
	require.Equal(t, []uint64{1, 2}, got)
	assert.Equal(t, 0, h.Len())
}

func TestHub_Close(t *testing.T) {
	h := NewHub(4, zap.NewNop())
	ch, cancel := h.Subscribe()

	h.Close()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Len())
	cancel()

	late, lateCancel := h.Subscribe()
	defer lateCancel()
	_, open = <-late
	assert.False(t, open, "关闭后的订阅应立即结束")

	// 关闭后投递不应 panic
	h.Notify(Event{Seq: 1})
}
