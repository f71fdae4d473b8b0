package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// Restorer 接收启动快照的一方（*store.Store 实现）
type Restorer interface {
	Restore(snap model.Snapshot) ([]string, error)
}

// LoadInto 从主目标读取快照并恢复到 store
// 主目标尚无数据时从空状态启动；返回被剪除的孤立成绩 ID
func LoadInto(ctx context.Context, primary Sink, r Restorer, logger *zap.Logger) ([]string, error) {
	snap, ok, err := primary.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("从 %s 加载快照失败: %w", primary.Name(), err)
	}
	if !ok {
		logger.Info("未找到已保存的快照，从空状态启动", zap.String("sink", primary.Name()))
		return nil, nil
	}

	pruned, err := r.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("恢复快照失败: %w", err)
	}

	counts := snap.Count()
	logger.Info("快照加载完成",
		zap.String("sink", primary.Name()),
		zap.Int("students", counts[model.KindStudent]),
		zap.Int("teachers", counts[model.KindTeacher]),
		zap.Int("courses", counts[model.KindCourse]),
		zap.Int("grades", counts[model.KindGrade]-len(pruned)),
		zap.Int("pruned", len(pruned)),
	)
	return pruned, nil
}

// SyncAll 把同一份快照同步写入全部目标
// 启动时用于让次要目标与主目标对齐，并落盘加载过程中剔除的孤立成绩。
// 单个目标失败不影响其余目标，全部失败信息合并返回
func SyncAll(ctx context.Context, sinks []Sink, snap model.Snapshot, logger *zap.Logger) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Save(ctx, snap); err != nil {
			logger.Error("快照同步失败", zap.String("sink", s.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
