package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryModel 账本变更流水
type JournalEntryModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	SessionID  string          `json:"session_id" gorm:"index;not null"`
	Kind       string          `json:"kind" gorm:"not null"` // contribute, vote, withdraw
	CampaignID string          `json:"campaign_id" gorm:"not null"`
	Address    string          `json:"address" gorm:"not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(36,18)"`
	ProposalID string          `json:"proposal_id"`
	Choice     string          `json:"choice"`
	TxHash     string          `json:"tx_hash"`
}

// TableName 自定义表名
func (JournalEntryModel) TableName() string {
	return "journal_entry"
}
