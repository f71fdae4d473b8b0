package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

func TestLoadInto_RestoresPrimary(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "ibacy.json"))
	ctx := context.Background()

	snap := fixtureSnapshot()
	snap.Grades = append(snap.Grades, model.Grade{ID: "orphan", StudentID: "gone", CourseID: "c1", Value: 9, Semester: 1})
	require.NoError(t, sink.Save(ctx, snap))

	s := store.New()
	pruned, err := LoadInto(ctx, sink, s, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, pruned)

	assert.Len(t, s.ListStudents(), 1)
	assert.Len(t, s.ListGrades(), 1)
	c, ok := s.GetCourse("c1")
	require.True(t, ok)
	assert.Equal(t, "t1", c.TeacherID)
}

func TestLoadInto_EmptyPrimaryStartsEmpty(t *testing.T) {
	s := store.New()
	pruned, err := LoadInto(context.Background(), &recordingSink{}, s, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, pruned)
	assert.Empty(t, s.ListStudents())
}

func TestLoadInto_RejectsDuplicateIDs(t *testing.T) {
	sink := &recordingSink{}
	snap := fixtureSnapshot()
	snap.Students = append(snap.Students, snap.Students[0])
	require.NoError(t, sink.Save(context.Background(), snap))

	_, err := LoadInto(context.Background(), sink, store.New(), zap.NewNop())
	require.Error(t, err)
}

type failingSink struct{ recordingSink }

func (*failingSink) Load(context.Context) (model.Snapshot, bool, error) {
	return model.Snapshot{}, false, errors.New("permission denied")
}

func TestLoadInto_SinkError(t *testing.T) {
	_, err := LoadInto(context.Background(), &failingSink{}, store.New(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestSyncAll_ContinuesPastFailure(t *testing.T) {
	bad := &recordingSink{fail: map[int]bool{1: true}}
	good := &recordingSink{}

	err := SyncAll(context.Background(), []Sink{bad, good}, fixtureSnapshot(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	snap, ok, err := good.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, snap.Students, 1)
}
