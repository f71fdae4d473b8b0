package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// FileSink 将快照保存为本地 JSON 文件
// 写入先落到同目录临时文件再 rename，读到的文件要么是旧快照要么是新快照
type FileSink struct {
	path string
}

// NewFileSink 创建文件持久化目标
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Name 实现 Sink
func (s *FileSink) Name() string { return "file" }

// Path 快照文件路径
func (s *FileSink) Path() string { return s.path }

// Save 实现 Sink
func (s *FileSink) Save(ctx context.Context, snap model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建快照目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	// rename 成功后临时文件已不存在，Remove 返回的错误忽略即可
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("替换快照文件失败: %w", err)
	}
	return nil
}

// Load 实现 Sink，文件不存在视为尚无数据
func (s *FileSink) Load(ctx context.Context) (model.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, false, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("读取快照文件失败: %w", err)
	}

	snap, err := Decode(data)
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("%s: %w", s.path, err)
	}
	return snap, true, nil
}
