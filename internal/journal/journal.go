package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/blues/daochat/internal/config"
	"github.com/blues/daochat/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Kind 流水类型
type Kind string

const (
	KindContribute Kind = "contribute"
	KindVote       Kind = "vote"
	KindWithdraw   Kind = "withdraw"
)

// Entry 一次成功的账本变更
type Entry struct {
	SessionID  string
	Kind       Kind
	CampaignID string
	Address    string
	Amount     decimal.Decimal
	ProposalID string
	Choice     string
	TxHash     string
	At         time.Time
}

// Journal 只追加的变更流水，不用于恢复账本
type Journal interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Nop 关闭流水时使用
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error { return nil }

// Open 连接数据库并迁移流水表
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.JournalEntryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// GormJournal 基于 gorm 的流水实现
type GormJournal struct {
	db *gorm.DB
}

// NewGormJournal 创建流水
func NewGormJournal(db *gorm.DB) *GormJournal {
	return &GormJournal{db: db}
}

// Record 写入一条流水
func (j *GormJournal) Record(ctx context.Context, e Entry) error {
	row := toModel(e)
	if err := j.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record %s entry: %w", e.Kind, err)
	}
	return nil
}

// Close 关闭底层连接
func (j *GormJournal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toModel(e Entry) model.JournalEntryModel {
	return model.JournalEntryModel{
		CreatedAt:  e.At,
		SessionID:  e.SessionID,
		Kind:       string(e.Kind),
		CampaignID: e.CampaignID,
		Address:    e.Address,
		Amount:     e.Amount,
		ProposalID: e.ProposalID,
		Choice:     e.Choice,
		TxHash:     e.TxHash,
	}
}
