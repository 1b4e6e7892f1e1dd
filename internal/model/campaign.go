package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Campaign 众筹项目
type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// 众筹信息
	FundingGoal    decimal.Decimal `json:"funding_goal"`
	CurrentFunding decimal.Decimal `json:"current_funding"`
	Deadline       time.Time       `json:"deadline"`

	Status CampaignStatus `json:"status"`

	// 关联
	Proposals    []Proposal     `json:"proposals"`
	Contributors []Contribution `json:"contributors"`
}

// CampaignStatus 项目状态
type CampaignStatus string

const (
	CampaignStatusActive     CampaignStatus = "active"     // 进行中
	CampaignStatusSuccessful CampaignStatus = "successful" // 成功
	CampaignStatusFailed     CampaignStatus = "failed"     // 失败
)

// Contribution 项目贡献者，每个地址最多一条
type Contribution struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// Proposal 项目提案
type Proposal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Votes       VoteTally `json:"votes"`
	Voters      []string  `json:"voters"`
}

// VoteTally 投票计数
type VoteTally struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// VoteChoice 投票选项
type VoteChoice string

const (
	VoteYes VoteChoice = "yes"
	VoteNo  VoteChoice = "no"
)

// ParseVoteChoice 解析投票选项，大小写不敏感
func ParseVoteChoice(s string) (VoteChoice, bool) {
	switch VoteChoice(strings.ToLower(strings.TrimSpace(s))) {
	case VoteYes:
		return VoteYes, true
	case VoteNo:
		return VoteNo, true
	default:
		return "", false
	}
}

// ContributorIndex 返回地址在贡献者列表中的位置
func (c *Campaign) ContributorIndex(address string) int {
	for i, contributor := range c.Contributors {
		if contributor.Address == address {
			return i
		}
	}
	return -1
}

// HasContributor 判断地址是否为项目贡献者
func (c *Campaign) HasContributor(address string) bool {
	return address != "" && c.ContributorIndex(address) >= 0
}

// Proposal 按ID查找提案，大小写不敏感
func (c *Campaign) Proposal(id string) (*Proposal, bool) {
	for i := range c.Proposals {
		if strings.EqualFold(c.Proposals[i].ID, id) {
			return &c.Proposals[i], true
		}
	}
	return nil, false
}

// HasVoted 判断地址是否已对该提案投票
func (p *Proposal) HasVoted(address string) bool {
	for _, voter := range p.Voters {
		if voter == address {
			return true
		}
	}
	return false
}

// Clone 深拷贝，调用方拿到的快照不会与账本共享切片
func (c *Campaign) Clone() Campaign {
	out := *c
	out.Contributors = make([]Contribution, len(c.Contributors))
	copy(out.Contributors, c.Contributors)
	out.Proposals = make([]Proposal, len(c.Proposals))
	for i, p := range c.Proposals {
		p.Voters = append(make([]string, 0, len(p.Voters)), p.Voters...)
		out.Proposals[i] = p
	}
	return out
}
