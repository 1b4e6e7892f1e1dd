package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/blues/daochat/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Session    SessionConfig    `mapstructure:"session"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Journal    JournalConfig    `mapstructure:"journal"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port          string `mapstructure:"port"`
	Mode          string `mapstructure:"mode"`
	MaxConcurrent int    `mapstructure:"max_concurrent"` // 同时处理的会话消息数上限
}

// ClassifierConfig 意图识别配置
type ClassifierConfig struct {
	Provider string        `mapstructure:"provider"` // rules, gemini
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LedgerConfig 账本配置
type LedgerConfig struct {
	SeedFile string `mapstructure:"seed_file"` // 为空时使用内置种子数据
}

// SessionConfig 会话配置
type SessionConfig struct {
	IdleTTL      time.Duration `mapstructure:"idle_ttl"`
	ReapInterval time.Duration `mapstructure:"reap_interval"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	DeadlineSweep bool          `mapstructure:"deadline_sweep"` // 截止时间到期后将未达标项目置为失败
	Interval      time.Duration `mapstructure:"interval"`
}

// JournalConfig 操作流水配置
type JournalConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Database DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN 返回 postgres 连接串
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// Load 加载配置，失败时直接退出
func Load() *Config {
	cfg, err := LoadFrom("")
	if err != nil {
		logger.Fatal("Unable to load config: %v", err)
	}
	return cfg
}

// LoadFrom 从指定文件加载配置；file 为空时按默认路径搜索 config.yaml
func LoadFrom(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/daochat")
	}

	setDefaults(v)

	// 自动读取环境变量，例如 DAOCHAT_CLASSIFIER_API_KEY
	v.SetEnvPrefix("daochat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if file != "" {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
		logger.Warn("Could not read config file, using defaults: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_concurrent", 16)
	v.SetDefault("classifier.provider", "rules")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.model", "gemini-2.5-flash")
	v.SetDefault("classifier.timeout", "20s")
	v.SetDefault("ledger.seed_file", "")
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.reap_interval", "1m")
	v.SetDefault("scheduler.deadline_sweep", false)
	v.SetDefault("scheduler.interval", "60s")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.database.host", "localhost")
	v.SetDefault("journal.database.port", 5432)
	v.SetDefault("journal.database.user", "postgres")
	v.SetDefault("journal.database.password", "")
	v.SetDefault("journal.database.dbname", "daochat")
	v.SetDefault("journal.database.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}

func (c *Config) validate() error {
	switch c.Classifier.Provider {
	case "rules":
	case "gemini":
		if c.Classifier.APIKey == "" {
			return fmt.Errorf("classifier.api_key is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown classifier provider %q", c.Classifier.Provider)
	}
	if c.Server.MaxConcurrent <= 0 {
		return fmt.Errorf("server.max_concurrent must be positive")
	}
	if c.Session.IdleTTL <= 0 || c.Session.ReapInterval <= 0 {
		return fmt.Errorf("session.idle_ttl and session.reap_interval must be positive")
	}
	return nil
}
