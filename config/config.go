package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int             `mapstructure:"port"`
	BodyLimit int64           `mapstructure:"body_limit"` // 请求体上限（字节）
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig 写接口限流配置（依赖 Redis）
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 持久化目标
const (
	SinkFile  = "file"
	SinkRedis = "redis"
	SinkSQL   = "sql"
)

// StorageConfig 快照持久化配置
// Sinks 中第一个目标同时作为启动时的加载来源
type StorageConfig struct {
	Sinks           []string      `mapstructure:"sinks"`
	File            FileConfig    `mapstructure:"file"`
	RedisKey        string        `mapstructure:"redis_key"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FileConfig 文件快照配置
type FileConfig struct {
	Path string `mapstructure:"path"`
}

// Uses 是否启用了指定的持久化目标
func (s *StorageConfig) Uses(sink string) bool {
	for _, v := range s.Sinks {
		if v == sink {
			return true
		}
	}
	return false
}

// 数据库驱动
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig 数据库配置，driver 为 postgres 或 sqlite
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ReportConfig 成绩单抬头
type ReportConfig struct {
	Institution  string `mapstructure:"institution"`
	AcademicYear string `mapstructure:"academic_year"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 只补充进程环境，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.requests", 120)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("storage.sinks", []string{SinkFile})
	v.SetDefault("storage.file.path", "data/ibacy.json")
	v.SetDefault("storage.redis_key", "ibacy:snapshot")
	v.SetDefault("storage.shutdown_timeout", "10s")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "ibacy")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Africa/Abidjan")
	v.SetDefault("db.sqlite_path", "data/ibacy.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("report.institution", "Institut Biblique IBACY")
	v.SetDefault("report.academic_year", "2024-2025")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("IBACY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 环境变量中的 sinks 以逗号分隔
	cfg.Storage.Sinks = normalizeSinks(cfg.Storage.Sinks)

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0 {
			return fmt.Errorf("配置校验失败: server.rate_limit.requests 与 window 必须为正数")
		}
	}
	if len(c.Storage.Sinks) == 0 {
		return fmt.Errorf("配置校验失败: storage.sinks 至少需要一个持久化目标")
	}
	seen := make(map[string]bool, len(c.Storage.Sinks))
	for _, s := range c.Storage.Sinks {
		switch s {
		case SinkFile, SinkRedis, SinkSQL:
		default:
			return fmt.Errorf("配置校验失败: 未知的持久化目标 %q", s)
		}
		if seen[s] {
			return fmt.Errorf("配置校验失败: 持久化目标 %q 重复", s)
		}
		seen[s] = true
	}
	if c.Storage.Uses(SinkFile) && c.Storage.File.Path == "" {
		return fmt.Errorf("配置校验失败: storage.file.path 不能为空")
	}
	if c.Storage.Uses(SinkRedis) && c.Storage.RedisKey == "" {
		return fmt.Errorf("配置校验失败: storage.redis_key 不能为空")
	}
	if c.Storage.Uses(SinkSQL) {
		switch c.Database.Driver {
		case DriverPostgres:
		case DriverSQLite:
			if c.Database.SQLitePath == "" {
				return fmt.Errorf("配置校验失败: db.sqlite_path 不能为空")
			}
		default:
			return fmt.Errorf("配置校验失败: db.driver 必须为 postgres 或 sqlite")
		}
	}
	return nil
}

func normalizeSinks(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, s := range strings.Split(item, ",") {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
