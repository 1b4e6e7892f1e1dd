package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blues/daochat/internal/chat"
	"github.com/blues/daochat/internal/config"
	"github.com/blues/daochat/internal/intent"
	"github.com/blues/daochat/internal/journal"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
	"github.com/blues/daochat/internal/scheduler"
	"github.com/blues/daochat/internal/session"
)

// App 组装好的服务组件，供 HTTP 服务和命令行客户端共用
type App struct {
	Config    *config.Config
	Sessions  *session.Manager
	Journal   journal.Journal
	Scheduler *scheduler.Manager
}

// New 按配置创建意图识别器、流水、会话管理器
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	classifier, err := NewClassifier(ctx, cfg.Classifier)
	if err != nil {
		return nil, err
	}

	seed, err := LoadSeed(cfg.Ledger, time.Now())
	if err != nil {
		return nil, err
	}

	j, err := OpenJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}

	dispatcher := chat.NewDispatcher(classifier, chat.WithJournal(j))
	sessions, err := session.NewManager(dispatcher, seed, session.WithMaxConcurrent(cfg.Server.MaxConcurrent))
	if err != nil {
		_ = j.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Sessions: sessions,
		Journal:  j,
	}, nil
}

// NewClassifier 按 provider 创建意图识别器
func NewClassifier(ctx context.Context, cfg config.ClassifierConfig) (intent.Classifier, error) {
	switch cfg.Provider {
	case "", "rules":
		logger.Info("Using rule-based intent classifier")
		return intent.NewRuleClassifier(), nil
	case "gemini":
		c, err := intent.NewGeminiClassifier(ctx, intent.GeminiOptions{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini classifier: %w", err)
		}
		logger.Info("Using intent classifier %s", c.Name())
		return c, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}

// LoadSeed 读取种子文件，未配置时使用内置数据
func LoadSeed(cfg config.LedgerConfig, now time.Time) ([]model.Campaign, error) {
	if cfg.SeedFile == "" {
		return ledger.DefaultSeed(now), nil
	}
	seed, err := ledger.LoadSeedFile(cfg.SeedFile, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed file: %w", err)
	}
	logger.Info("Loaded %d campaigns from %s", len(seed), cfg.SeedFile)
	return seed, nil
}

// OpenJournal 未启用时返回 journal.Nop
func OpenJournal(cfg config.JournalConfig) (journal.Journal, error) {
	if !cfg.Enabled {
		return journal.Nop{}, nil
	}
	db, err := journal.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Mutation journal enabled on %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	return journal.NewGormJournal(db), nil
}

// StartScheduler 注册会话清理任务，按配置注册截止时间检查任务
func (a *App) StartScheduler() error {
	m, err := scheduler.NewManager()
	if err != nil {
		return err
	}

	jobs := []scheduler.Job{
		scheduler.NewSessionReaperJob(a.Sessions, a.Config.Session.IdleTTL, a.Config.Session.ReapInterval),
	}
	if a.Config.Scheduler.DeadlineSweep {
		jobs = append(jobs, scheduler.NewDeadlineSweepJob(a.Sessions, a.Config.Scheduler.Interval))
	}
	for _, job := range jobs {
		if err := m.Register(job); err != nil {
			_ = m.Stop()
			return err
		}
	}

	m.Start()
	a.Scheduler = m
	return nil
}

// Close 依次停止定时任务、会话协程池和流水
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		errs = append(errs, a.Scheduler.Stop())
	}
	errs = append(errs, a.Sessions.Close(), a.Journal.Close())
	return errors.Join(errs...)
}
