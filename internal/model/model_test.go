package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		amount string
		want   Tier
	}{
		{"5", TierGold},
		{"12.5", TierGold},
		{"4.99", TierSilver},
		{"1", TierSilver},
		{"0.99", TierBronze},
		{"0.5", TierBronze},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestParseVoteChoice(t *testing.T) {
	choice, ok := ParseVoteChoice(" YES ")
	assert.True(t, ok)
	assert.Equal(t, VoteYes, choice)

	choice, ok = ParseVoteChoice("no")
	assert.True(t, ok)
	assert.Equal(t, VoteNo, choice)

	_, ok = ParseVoteChoice("maybe")
	assert.False(t, ok)
}

func TestCampaignCloneIsDeep(t *testing.T) {
	c := Campaign{
		ID:           "PA",
		Contributors: []Contribution{{Address: "0x1", Amount: decimal.NewFromInt(1)}},
		Proposals:    []Proposal{{ID: "P1", Voters: []string{"0x1"}}},
	}
	clone := c.Clone()
	clone.Contributors[0].Address = "0x2"
	clone.Proposals[0].Voters[0] = "0x2"
	clone.Proposals[0].Votes.Yes = 3

	assert.Equal(t, "0x1", c.Contributors[0].Address)
	assert.Equal(t, "0x1", c.Proposals[0].Voters[0])
	assert.Equal(t, 0, c.Proposals[0].Votes.Yes)
}

func TestCampaignProposalLookupIgnoresCase(t *testing.T) {
	c := Campaign{Proposals: []Proposal{{ID: "P1"}, {ID: "P2"}}}
	p, ok := c.Proposal("p2")
	assert.True(t, ok)
	assert.Equal(t, "P2", p.ID)

	_, ok = c.Proposal("P3")
	assert.False(t, ok)
}

func TestNewCampaignView(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Campaign{
		FundingGoal:    decimal.NewFromInt(10),
		CurrentFunding: decimal.RequireFromString("4.2"),
		Deadline:       now.Add(36 * time.Hour),
		Contributors:   []Contribution{{Address: "0x1"}, {Address: "0x2"}},
	}
	view := NewCampaignView(c, now)
	assert.Equal(t, 42.0, view.PercentFunded)
	assert.Equal(t, 2, view.ContributorCount)
	assert.Equal(t, 2, view.DaysRemaining)

	c.Deadline = now.Add(-time.Hour)
	assert.Equal(t, 0, NewCampaignView(c, now).DaysRemaining)
}

func TestNewLeaderboardViewTruncates(t *testing.T) {
	sorted := make([]Contribution, 7)
	for i := range sorted {
		sorted[i] = Contribution{Address: string(rune('a' + i)), Amount: decimal.NewFromInt(int64(10 - i))}
	}
	view := NewLeaderboardView(Campaign{ID: "PA", Name: "Project Alpha"}, sorted)
	assert.Len(t, view.Entries, LeaderboardSize)
	assert.Equal(t, 1, view.Entries[0].Rank)
	assert.Equal(t, "a", view.Entries[0].Address)
	assert.Equal(t, AttachmentLeaderboard, NewAttachment(view).Type)
}
