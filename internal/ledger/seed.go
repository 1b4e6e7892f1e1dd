package ledger

import (
	"fmt"
	"os"
	"time"

	"github.com/blues/daochat/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

// DefaultSeed 内置的三个演示项目，截止时间相对 now 计算
func DefaultSeed(now time.Time) []model.Campaign {
	return []model.Campaign{
		{
			ID:             "PA",
			Name:           "Project Alpha",
			Description:    "A decentralized solar energy grid.",
			FundingGoal:    decimal.NewFromInt(10),
			CurrentFunding: decimal.RequireFromString("4.2"),
			Deadline:       now.Add(15 * day),
			Contributors: []model.Contribution{
				{Address: "0x123...", Amount: decimal.NewFromInt(2)},
				{Address: "0x456...", Amount: decimal.RequireFromString("2.2")},
			},
			Proposals: []model.Proposal{
				{
					ID:          "P1",
					Title:       "Increase Marketing Budget",
					Description: "Allocate 1 ETH for marketing.",
					Votes:       model.VoteTally{Yes: 1},
					Voters:      []string{"0x123..."},
				},
				{
					ID:          "P2",
					Title:       "Change Project Goal",
					Description: "Adjust the final product scope.",
					Voters:      []string{},
				},
			},
			Status: model.CampaignStatusActive,
		},
		{
			ID:             "PB",
			Name:           "Project Beta",
			Description:    "An open-source platform for scientific research.",
			FundingGoal:    decimal.NewFromInt(25),
			CurrentFunding: decimal.RequireFromString("26.5"),
			Deadline:       now.Add(-2 * day),
			Contributors:   []model.Contribution{},
			Proposals:      []model.Proposal{},
			Status:         model.CampaignStatusSuccessful,
		},
		{
			ID:             "PF",
			Name:           "Project Fail",
			Description:    "A project that did not meet its funding goal.",
			FundingGoal:    decimal.NewFromInt(50),
			CurrentFunding: decimal.NewFromInt(5),
			Deadline:       now.Add(-5 * day),
			Contributors: []model.Contribution{
				{Address: "0xabc...", Amount: decimal.NewFromInt(5)},
			},
			Proposals: []model.Proposal{},
			Status:    model.CampaignStatusFailed,
		},
	}
}

// seedFile 种子文件格式
type seedFile struct {
	Campaigns []seedCampaign `yaml:"campaigns"`
}

type seedCampaign struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	FundingGoal    float64            `yaml:"funding_goal"`
	CurrentFunding float64            `yaml:"current_funding"`
	DeadlineIn     time.Duration      `yaml:"deadline_in"` // 相对启动时间，可为负
	Status         string             `yaml:"status"`
	Contributors   []seedContribution `yaml:"contributors"`
	Proposals      []seedProposal     `yaml:"proposals"`
}

type seedContribution struct {
	Address string  `yaml:"address"`
	Amount  float64 `yaml:"amount"`
}

type seedProposal struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Yes         int      `yaml:"yes"`
	No          int      `yaml:"no"`
	Voters      []string `yaml:"voters"`
}

// LoadSeedFile 从 YAML 文件读取种子数据
func LoadSeedFile(path string, now time.Time) ([]model.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data, now)
}

// ParseSeed 解析并校验种子数据
func ParseSeed(data []byte, now time.Time) ([]model.Campaign, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]bool, len(f.Campaigns))
	campaigns := make([]model.Campaign, 0, len(f.Campaigns))
	for _, sc := range f.Campaigns {
		c, err := sc.toCampaign(now)
		if err != nil {
			return nil, err
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate campaign id %q", c.ID)
		}
		seen[c.ID] = true
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (sc seedCampaign) toCampaign(now time.Time) (model.Campaign, error) {
	if sc.ID == "" || sc.Name == "" {
		return model.Campaign{}, fmt.Errorf("campaign id and name are required")
	}
	if sc.FundingGoal <= 0 {
		return model.Campaign{}, fmt.Errorf("campaign %s: funding_goal must be positive", sc.ID)
	}
	if sc.CurrentFunding < 0 {
		return model.Campaign{}, fmt.Errorf("campaign %s: current_funding must not be negative", sc.ID)
	}

	status := model.CampaignStatus(sc.Status)
	switch status {
	case "":
		status = model.CampaignStatusActive
	case model.CampaignStatusActive, model.CampaignStatusSuccessful, model.CampaignStatusFailed:
	default:
		return model.Campaign{}, fmt.Errorf("campaign %s: unknown status %q", sc.ID, sc.Status)
	}

	c := model.Campaign{
		ID:             sc.ID,
		Name:           sc.Name,
		Description:    sc.Description,
		FundingGoal:    decimal.NewFromFloat(sc.FundingGoal),
		CurrentFunding: decimal.NewFromFloat(sc.CurrentFunding),
		Deadline:       now.Add(sc.DeadlineIn),
		Status:         status,
		Contributors:   make([]model.Contribution, 0, len(sc.Contributors)),
		Proposals:      make([]model.Proposal, 0, len(sc.Proposals)),
	}
	for _, contributor := range sc.Contributors {
		if contributor.Amount <= 0 {
			return model.Campaign{}, fmt.Errorf("campaign %s: contribution amount must be positive", sc.ID)
		}
		if c.HasContributor(contributor.Address) {
			return model.Campaign{}, fmt.Errorf("campaign %s: duplicate contributor %s", sc.ID, contributor.Address)
		}
		c.Contributors = append(c.Contributors, model.Contribution{
			Address: contributor.Address,
			Amount:  decimal.NewFromFloat(contributor.Amount),
		})
	}
	for _, p := range sc.Proposals {
		if _, dup := c.Proposal(p.ID); dup {
			return model.Campaign{}, fmt.Errorf("campaign %s: duplicate proposal %s", sc.ID, p.ID)
		}
		voters := p.Voters
		if voters == nil {
			voters = []string{}
		}
		c.Proposals = append(c.Proposals, model.Proposal{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Votes:       model.VoteTally{Yes: p.Yes, No: p.No},
			Voters:      voters,
		})
	}
	return c, nil
}
