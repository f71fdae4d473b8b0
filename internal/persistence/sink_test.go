package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// ── 文件 ──

func TestFileSink_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "nested", "ibacy.json"))
	ctx := context.Background()

	_, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "文件不存在时应视为无数据")

	want := fixtureSnapshot()
	require.NoError(t, sink.Save(ctx, want))

	got, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "不应残留临时文件")
	assert.Equal(t, "ibacy.json", entries[0].Name())
}

func TestFileSink_SaveOverwrites(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "ibacy.json"))
	ctx := context.Background()

	require.NoError(t, sink.Save(ctx, fixtureSnapshot()))
	require.NoError(t, sink.Save(ctx, model.Snapshot{}))

	got, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.Students)
	assert.Empty(t, got.Grades)
}

func TestFileSink_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibacy.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, _, err := NewFileSink(path).Load(context.Background())
	assert.True(t, errors.Is(err, pkgerrors.ErrCorruptSnapshot))
}

// ── Redis ──

type memorySnapshotStore struct {
	data map[string][]byte
	err  error
}

func (m *memorySnapshotStore) SaveSnapshot(_ context.Context, key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memorySnapshotStore) LoadSnapshot(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	data, ok := m.data[key]
	return data, ok, nil
}

func TestRedisSink_SaveLoad(t *testing.T) {
	store := &memorySnapshotStore{}
	sink := NewRedisSink(store, "ibacy:snapshot")
	ctx := context.Background()

	_, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sink.Save(ctx, fixtureSnapshot()))
	assert.Contains(t, string(store.data["ibacy:snapshot"]), `"etudiants"`)

	got, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fixtureSnapshot(), got)
}

func TestRedisSink_ClientError(t *testing.T) {
	boom := errors.New("connection refused")
	sink := NewRedisSink(&memorySnapshotStore{err: boom}, "k")

	assert.ErrorIs(t, sink.Save(context.Background(), model.Snapshot{}), boom)
	_, _, err := sink.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ── SQL ──

type memoryRepo struct {
	snap  *model.Snapshot
	saves int
}

func (m *memoryRepo) ReplaceSnapshot(_ context.Context, snap model.Snapshot) error {
	c := snap.Clone()
	m.snap = &c
	m.saves++
	return nil
}

func (m *memoryRepo) LoadSnapshot(_ context.Context) (model.Snapshot, error) {
	if m.snap == nil {
		return model.Snapshot{}, nil
	}
	return m.snap.Clone(), nil
}

func (m *memoryRepo) IsEmpty(_ context.Context) (bool, error) {
	if m.snap == nil {
		return true, nil
	}
	n := 0
	for _, c := range m.snap.Count() {
		n += c
	}
	return n == 0, nil
}

func TestSQLSink_SaveLoad(t *testing.T) {
	repo := &memoryRepo{}
	sink := NewSQLSink(repo)
	ctx := context.Background()

	_, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sink.Save(ctx, fixtureSnapshot()))
	got, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fixtureSnapshot(), got)
	assert.Equal(t, 1, repo.saves)
}

// ── 构建 ──

func TestBuildSinks(t *testing.T) {
	cfg := &config.StorageConfig{
		Sinks: []string{config.SinkFile},
		File:  config.FileConfig{Path: "x.json"},
	}
	sinks, err := BuildSinks(cfg, Deps{})
	require.NoError(t, err)
	require.Len(t, sinks, 1)
	assert.Equal(t, "file", sinks[0].Name())

	cfg.Sinks = []string{config.SinkFile, config.SinkRedis}
	_, err = BuildSinks(cfg, Deps{})
	assert.Error(t, err, "缺少 Redis 连接时应报错")

	cfg.Sinks = []string{config.SinkSQL}
	_, err = BuildSinks(cfg, Deps{})
	assert.Error(t, err, "缺少数据库连接时应报错")
}
