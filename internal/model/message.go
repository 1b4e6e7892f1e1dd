package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Sender 消息发送方
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ActionStyle 按钮样式
type ActionStyle string

const (
	ActionStylePrimary   ActionStyle = "primary"
	ActionStyleSecondary ActionStyle = "secondary"
)

// Action 消息附带的可选操作
type Action struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Style       ActionStyle `json:"style"`
	Command     string      `json:"command"`
	DisplayText string      `json:"display_text,omitempty"`
}

// Message 聊天消息
type Message struct {
	ID         string      `json:"id"`
	Sender     Sender      `json:"sender"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Actions    []Action    `json:"actions,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AttachmentType 附带数据类型，由展示层决定如何渲染
type AttachmentType string

const (
	AttachmentCampaign     AttachmentType = "campaign"
	AttachmentCampaignList AttachmentType = "campaign_list"
	AttachmentProfile      AttachmentType = "profile"
	AttachmentLeaderboard  AttachmentType = "leaderboard"
	AttachmentBadge        AttachmentType = "badge"
)

// View 可附带在消息上的数据
type View interface {
	AttachmentType() AttachmentType
}

// Attachment 消息附带数据
type Attachment struct {
	Type AttachmentType `json:"type"`
	View View           `json:"view"`
}

// NewAttachment 根据视图创建附带数据
func NewAttachment(v View) *Attachment {
	return &Attachment{Type: v.AttachmentType(), View: v}
}

// CampaignView 单个项目详情
type CampaignView struct {
	Campaign         Campaign `json:"campaign"`
	PercentFunded    float64  `json:"percent_funded"`
	ContributorCount int      `json:"contributor_count"`
	DaysRemaining    int      `json:"days_remaining"`
}

func (CampaignView) AttachmentType() AttachmentType { return AttachmentCampaign }

// NewCampaignView 计算展示所需的派生字段
func NewCampaignView(c Campaign, now time.Time) CampaignView {
	percent := 0.0
	if c.FundingGoal.IsPositive() {
		percent, _ = c.CurrentFunding.Div(c.FundingGoal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}
	days := 0
	if remaining := c.Deadline.Sub(now); remaining > 0 {
		days = int(math.Ceil(remaining.Hours() / 24))
	}
	return CampaignView{
		Campaign:         c,
		PercentFunded:    percent,
		ContributorCount: len(c.Contributors),
		DaysRemaining:    days,
	}
}

// CampaignListView 项目列表
type CampaignListView struct {
	Campaigns []CampaignView `json:"campaigns"`
}

func (CampaignListView) AttachmentType() AttachmentType { return AttachmentCampaignList }

// ProfileView 用户资料
type ProfileView struct {
	Profile UserProfile `json:"profile"`
}

func (ProfileView) AttachmentType() AttachmentType { return AttachmentProfile }

// LeaderboardSize 排行榜展示条数
const LeaderboardSize = 5

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank    int             `json:"rank"`
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// LeaderboardView 项目贡献排行榜
type LeaderboardView struct {
	CampaignID   string             `json:"campaign_id"`
	CampaignName string             `json:"campaign_name"`
	Entries      []LeaderboardEntry `json:"entries"`
}

func (LeaderboardView) AttachmentType() AttachmentType { return AttachmentLeaderboard }

// NewLeaderboardView 取排好序的贡献者前 LeaderboardSize 名
func NewLeaderboardView(c Campaign, sorted []Contribution) LeaderboardView {
	n := min(len(sorted), LeaderboardSize)
	entries := make([]LeaderboardEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = LeaderboardEntry{Rank: i + 1, Address: sorted[i].Address, Amount: sorted[i].Amount}
	}
	return LeaderboardView{CampaignID: c.ID, CampaignName: c.Name, Entries: entries}
}

// BadgeView 新铸造的徽章
type BadgeView struct {
	Badge NFTBadge `json:"badge"`
}

func (BadgeView) AttachmentType() AttachmentType { return AttachmentBadge }
