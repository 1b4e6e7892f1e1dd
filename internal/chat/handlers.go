package chat

import (
	"context"
	"fmt"

	"github.com/blues/daochat/internal/intent"
	"github.com/blues/daochat/internal/journal"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
)

func (d *Dispatcher) showProjects(_ context.Context, st *State, _ intent.Params) model.Message {
	campaigns := st.Ledger.ListCampaigns()
	if len(campaigns) == 0 {
		return d.bot(textNoProjects, nil)
	}

	now := d.now()
	view := model.CampaignListView{Campaigns: make([]model.CampaignView, len(campaigns))}
	for i, c := range campaigns {
		view.Campaigns[i] = model.NewCampaignView(c, now)
	}
	return d.bot(textProjects, view)
}

// status 贡献过失败项目的用户会看到撤资按钮
func (d *Dispatcher) status(_ context.Context, st *State, p intent.Params) model.Message {
	if p.ProjectName == "" {
		return d.bot(usageStatus, nil)
	}
	c, err := st.Ledger.FindCampaign(p.ProjectName)
	if err != nil {
		return d.bot(textCouldNotFind(p.ProjectName), nil)
	}

	text := fmt.Sprintf("Here is the status for %s:", c.Name)
	view := model.NewCampaignView(c, d.now())

	profile, connected := st.Ledger.Profile()
	if c.Status != model.CampaignStatusFailed || !connected || !c.HasContributor(profile.Address) {
		return d.bot(text, view)
	}

	msg := d.propose(st, text,
		PendingWithdrawal{CampaignID: c.ID, CampaignName: c.Name},
		confirmButton("Withdraw Funds", fmt.Sprintf("Requesting withdrawal from %s", c.Name)),
	)
	msg.Attachment = model.NewAttachment(view)
	return msg
}

func (d *Dispatcher) proposeContribution(_ context.Context, st *State, p intent.Params) model.Message {
	if p.ProjectName == "" || p.Amount == nil || !p.Amount.IsPositive() {
		return d.bot(usageContribute, nil)
	}
	c, err := st.Ledger.FindCampaign(p.ProjectName)
	if err != nil {
		return d.bot(textCouldNotFind(p.ProjectName), nil)
	}

	amount := *p.Amount
	return d.propose(st,
		fmt.Sprintf("You are about to contribute %s ETH to %s. Please confirm.", amount, c.Name),
		PendingContribution{CampaignID: c.ID, CampaignName: c.Name, Amount: amount},
		confirmButton("Confirm Contribution", fmt.Sprintf("Contributing %s ETH to %s", amount, c.Name)),
		cancelButton("Canceling contribution"),
	)
}

func (d *Dispatcher) confirmContribution(ctx context.Context, st *State, a PendingContribution) model.Message {
	res, err := st.Ledger.Contribute(a.CampaignID, a.Amount)
	if err != nil {
		logger.Info("Contribution to %s rejected for session %s: %v", a.CampaignID, st.SessionID, err)
		return d.bot("Contribution failed: "+failureText(err, res.Campaign), nil)
	}

	logger.Info("Session %s contributed %s ETH to %s, tx: %s", st.SessionID, res.Amount, a.CampaignID, res.TxHash)
	d.record(ctx, journal.Entry{
		SessionID:  st.SessionID,
		Kind:       journal.KindContribute,
		CampaignID: res.Campaign.ID,
		Address:    d.address(st),
		Amount:     res.Amount,
		TxHash:     res.TxHash,
	})
	return d.bot(fmt.Sprintf("%s\nTransaction Hash: %s", res.Message, res.TxHash), model.BadgeView{Badge: res.Badge})
}

func (d *Dispatcher) proposeVote(_ context.Context, st *State, p intent.Params) model.Message {
	choice, ok := model.ParseVoteChoice(p.VoteChoice)
	if !ok || p.ProposalID == "" || p.ProjectName == "" {
		return d.bot(usageVote, nil)
	}
	c, err := st.Ledger.FindCampaign(p.ProjectName)
	if err != nil {
		return d.bot(textProjectNotFound(p.ProjectName), nil)
	}

	return d.propose(st,
		fmt.Sprintf("You are about to vote '%s' on proposal %s for %s. Please confirm.", upper(choice), p.ProposalID, c.Name),
		PendingVote{CampaignID: c.ID, CampaignName: c.Name, ProposalID: p.ProposalID, Choice: choice},
		confirmButton("Confirm Vote", fmt.Sprintf("Voting %s on %s", upper(choice), p.ProposalID)),
		cancelButton("Canceling vote"),
	)
}

func (d *Dispatcher) confirmVote(ctx context.Context, st *State, a PendingVote) model.Message {
	res, err := st.Ledger.Vote(a.CampaignID, a.ProposalID, a.Choice)
	if err != nil {
		logger.Info("Vote on %s/%s rejected for session %s: %v", a.CampaignID, a.ProposalID, st.SessionID, err)
		c := res.Campaign
		if c.Name == "" {
			c.Name = a.CampaignName
		}
		return d.bot(failureText(err, c), nil)
	}

	d.record(ctx, journal.Entry{
		SessionID:  st.SessionID,
		Kind:       journal.KindVote,
		CampaignID: res.Campaign.ID,
		Address:    d.address(st),
		ProposalID: res.ProposalID,
		Choice:     string(res.Choice),
	})
	return d.bot(res.Message, nil)
}

func (d *Dispatcher) confirmWithdrawal(ctx context.Context, st *State, a PendingWithdrawal) model.Message {
	res, err := st.Ledger.Withdraw(a.CampaignID)
	if err != nil {
		logger.Info("Withdrawal from %s rejected for session %s: %v", a.CampaignID, st.SessionID, err)
		return d.bot(failureText(err, res.Campaign), nil)
	}

	logger.Info("Session %s withdrew %s ETH from %s", st.SessionID, res.Amount, a.CampaignID)
	d.record(ctx, journal.Entry{
		SessionID:  st.SessionID,
		Kind:       journal.KindWithdraw,
		CampaignID: res.Campaign.ID,
		Address:    d.address(st),
		Amount:     res.Amount,
	})
	return d.bot(res.Message, nil)
}

func (d *Dispatcher) leaderboard(_ context.Context, st *State, p intent.Params) model.Message {
	if p.ProjectName == "" {
		return d.bot(usageLeaderboard, nil)
	}
	c, err := st.Ledger.FindCampaign(p.ProjectName)
	if err != nil {
		return d.bot(textProjectNotFound(p.ProjectName), nil)
	}
	contributors, err := st.Ledger.Leaderboard(c.ID)
	if err != nil {
		return d.bot(textProjectNotFound(p.ProjectName), nil)
	}
	if len(contributors) == 0 {
		return d.bot(fmt.Sprintf("There are no contributors to %s yet.", c.Name), nil)
	}
	return d.bot(fmt.Sprintf("Showing leaderboard for %s:", c.Name), model.NewLeaderboardView(c, contributors))
}

func (d *Dispatcher) showProfile(_ context.Context, st *State, _ intent.Params) model.Message {
	profile, ok := st.Ledger.Profile()
	if !ok {
		return d.bot(textNoWalletProfile, nil)
	}
	return d.bot(textProfile, model.ProfileView{Profile: profile})
}

func (d *Dispatcher) help(context.Context, *State, intent.Params) model.Message {
	return d.bot(textHelp, nil)
}

func (d *Dispatcher) unknown(context.Context, *State, intent.Params) model.Message {
	return d.bot(textUnknown, nil)
}

func (d *Dispatcher) address(st *State) string {
	profile, _ := st.Ledger.Profile()
	return profile.Address
}
