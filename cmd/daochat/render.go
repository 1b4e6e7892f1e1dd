package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blues/daochat/internal/model"
)

// renderMessage 将机器人回复输出为纯文本
func renderMessage(w io.Writer, msg model.Message, now time.Time) {
	for i, line := range strings.Split(msg.Text, "\n") {
		if i == 0 {
			fmt.Fprintf(w, "bot> %s\n", line)
			continue
		}
		fmt.Fprintf(w, "     %s\n", line)
	}

	if msg.Attachment != nil {
		renderView(w, msg.Attachment.View, now)
	}

	if len(msg.Actions) > 0 {
		labels := make([]string, len(msg.Actions))
		for i, a := range msg.Actions {
			labels[i] = fmt.Sprintf("[%d] %s", i+1, a.Label)
		}
		fmt.Fprintf(w, "     %s\n", strings.Join(labels, "  "))
	}
}

func renderView(w io.Writer, view model.View, now time.Time) {
	switch v := view.(type) {
	case model.CampaignListView:
		for _, c := range v.Campaigns {
			fmt.Fprintf(w, "     %s\n", campaignLine(c))
		}
	case model.CampaignView:
		fmt.Fprintf(w, "     %s\n", campaignLine(v))
		if v.Campaign.Description != "" {
			fmt.Fprintf(w, "     %s\n", v.Campaign.Description)
		}
		fmt.Fprintf(w, "     contributors: %d\n", v.ContributorCount)
		for _, p := range v.Campaign.Proposals {
			fmt.Fprintf(w, "     %s  %s (yes %d / no %d)\n", p.ID, p.Title, p.Votes.Yes, p.Votes.No)
		}
	case model.ProfileView:
		p := v.Profile
		fmt.Fprintf(w, "     wallet: %s\n", p.Address)
		fmt.Fprintf(w, "     reputation: %s\n", p.Reputation)
		fmt.Fprintf(w, "     contributions: %d\n", len(p.Contributions))
		for _, b := range p.Badges {
			fmt.Fprintf(w, "     %s\n", badgeLine(b))
		}
	case model.LeaderboardView:
		for _, e := range v.Entries {
			fmt.Fprintf(w, "     #%d  %s  %s ETH\n", e.Rank, e.Address, e.Amount)
		}
	case model.BadgeView:
		fmt.Fprintf(w, "     minted %s\n", badgeLine(v.Badge))
	}
}

func campaignLine(v model.CampaignView) string {
	c := v.Campaign
	line := fmt.Sprintf("%-4s %-20s %s / %s ETH (%.0f%%)  %s",
		c.ID, c.Name, c.CurrentFunding, c.FundingGoal, v.PercentFunded, c.Status)
	if c.Status == model.CampaignStatusActive {
		line += fmt.Sprintf("  %d days left", v.DaysRemaining)
	}
	return line
}

func badgeLine(b model.NFTBadge) string {
	return fmt.Sprintf("%s badge %s: %s", b.Tier, b.ID, b.Name)
}
