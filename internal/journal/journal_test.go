package journal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB 只生成 SQL，不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost port=5432 user=postgres dbname=daochat sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestGormJournalRecord(t *testing.T) {
	db := dryRunDB(t)
	j := NewGormJournal(db)

	entry := Entry{
		SessionID:  "s-1",
		Kind:       KindContribute,
		CampaignID: "PA",
		Address:    "0x0000000000000000000000000000000000000001",
		Amount:     decimal.RequireFromString("0.5"),
		TxHash:     "0xabc",
		At:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, j.Record(context.Background(), entry))

	row := toModel(entry)
	stmt := db.Session(&gorm.Session{DryRun: true}).Create(&row).Statement
	assert.Contains(t, stmt.SQL.String(), `INSERT INTO "journal_entry"`)
	assert.Contains(t, stmt.Vars, "PA")
}

func TestToModel(t *testing.T) {
	row := toModel(Entry{Kind: KindVote, CampaignID: "PA", ProposalID: "P1", Choice: "yes"})
	assert.Equal(t, "vote", row.Kind)
	assert.Equal(t, "P1", row.ProposalID)
	assert.Equal(t, "yes", row.Choice)
	assert.True(t, row.Amount.IsZero())
}

func TestNop(t *testing.T) {
	var j Journal = Nop{}
	assert.NoError(t, j.Record(context.Background(), Entry{}))
	assert.NoError(t, j.Close())
}
