package persistence

import (
	"context"
	"fmt"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/repository"
	"github.com/awieserg/Notes-Ibacy/pkg/redis"
)

// Sink 快照持久化目标
type Sink interface {
	// Name 目标名称，用于日志
	Name() string
	// Save 整体覆盖写入快照
	Save(ctx context.Context, snap model.Snapshot) error
	// Load 读取快照；目标中尚无数据时返回 (空快照, false, nil)
	Load(ctx context.Context) (model.Snapshot, bool, error)
}

// Deps 构建持久化目标所需的外部连接，未启用的目标对应字段可为 nil
type Deps struct {
	Redis *redis.Client
	Repo  *repository.Repository
}

// BuildSinks 按配置顺序创建持久化目标，第一个目标即加载来源
func BuildSinks(cfg *config.StorageConfig, deps Deps) ([]Sink, error) {
	sinks := make([]Sink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkFile:
			sinks = append(sinks, NewFileSink(cfg.File.Path))
		case config.SinkRedis:
			if deps.Redis == nil {
				return nil, fmt.Errorf("持久化目标 redis 需要 Redis 连接")
			}
			sinks = append(sinks, NewRedisSink(deps.Redis, cfg.RedisKey))
		case config.SinkSQL:
			if deps.Repo == nil {
				return nil, fmt.Errorf("持久化目标 sql 需要数据库连接")
			}
			sinks = append(sinks, NewSQLSink(deps.Repo))
		default:
			return nil, fmt.Errorf("未知的持久化目标: %s", name)
		}
	}
	return sinks, nil
}
