package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier 徽章等级
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

var (
	goldThreshold   = decimal.NewFromInt(5)
	silverThreshold = decimal.NewFromInt(1)
)

// TierFor 根据单次贡献金额计算徽章等级
func TierFor(amount decimal.Decimal) Tier {
	switch {
	case amount.GreaterThanOrEqual(goldThreshold):
		return TierGold
	case amount.GreaterThanOrEqual(silverThreshold):
		return TierSilver
	default:
		return TierBronze
	}
}

// NFTBadge 贡献徽章，铸造后不可变
type NFTBadge struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Tier     Tier      `json:"tier"`
	Campaign string    `json:"campaign"`
	IssuedAt time.Time `json:"issued_at"`
}

// ContributionRecord 用户侧贡献历史，每次贡献一条
type ContributionRecord struct {
	CampaignID string          `json:"campaign_id"`
	Amount     decimal.Decimal `json:"amount"`
	TxHash     string          `json:"tx_hash"`
	CreatedAt  time.Time       `json:"created_at"`
}

// UserProfile 已连接钱包的用户
type UserProfile struct {
	Address       string               `json:"address"`
	Reputation    decimal.Decimal      `json:"reputation"`
	Badges        []NFTBadge           `json:"badges"`
	Contributions []ContributionRecord `json:"contributions"`
}

// Clone 深拷贝
func (u *UserProfile) Clone() UserProfile {
	out := *u
	out.Badges = make([]NFTBadge, len(u.Badges))
	copy(out.Badges, u.Badges)
	out.Contributions = make([]ContributionRecord, len(u.Contributions))
	copy(out.Contributions, u.Contributions)
	return out
}
