package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/model"
)

const (
	textWelcome = "Welcome to the DAO Crowdfunding Assistant! Your wallet is connected. " +
		"Try asking me to 'show projects' to get started, or 'help' for more commands."
	textHelp = `Here are some things you can ask me:
- **"Show all projects"**: Lists all crowdfunding projects.
- **"What's the status of Project Alpha?"**: Shows detailed status of a project.
- **"I want to contribute 0.5 eth to Project Alpha"**: Initiate a contribution.
- **"Vote yes on P1 for Project Alpha"**: Vote on a proposal.
- **"Show me the leaderboard for Project Alpha"**: See top contributors.
- **"Show my profile"**: Check your wallet, NFTs, and reputation.`
	textUnknown           = "I'm not sure how to help with that. Try 'help' for a list of commands."
	textClassifierFailure = "Sorry, I had a little trouble understanding that. Could you please rephrase?"
	textNoProjects        = "There are no active projects right now."
	textProjects          = "Here are the current projects:"
	textNoWalletProfile   = "Your wallet is not connected."
	textProfile           = "Here is your user profile:"
	textCanceled          = "Action canceled."
	textUnknownCommand    = "Unknown confirmation action."

	usageStatus      = "Please specify a project name or ID. For example: 'status Project Alpha'."
	usageContribute  = "Please format your request like: 'contribute <amount> ETH to <project name>'."
	usageVote        = "Please use the format: 'vote <yes/no> on <proposal ID> for <project name>'"
	usageLeaderboard = "Please specify which project's leaderboard you want to see."
)

func textCouldNotFind(query string) string {
	return fmt.Sprintf("Sorry, I couldn't find a project called %q.", query)
}

func textProjectNotFound(query string) string {
	return fmt.Sprintf("Project %q not found.", query)
}

// failureText 将账本错误转换为提示文本
func failureText(err error, c model.Campaign) string {
	switch {
	case errors.Is(err, ledger.ErrNoWallet):
		return "No wallet connected."
	case errors.Is(err, ledger.ErrCampaignNotFound):
		return "Project not found."
	case errors.Is(err, ledger.ErrProposalNotFound):
		return "Proposal not found."
	case errors.Is(err, ledger.ErrNotActive):
		return fmt.Sprintf("Project is not active. Current status: %s.", c.Status)
	case errors.Is(err, ledger.ErrWrongStatus):
		return "Funds can only be withdrawn from failed projects."
	case errors.Is(err, ledger.ErrNotAContributor):
		return fmt.Sprintf("You must be a contributor to %s to vote.", c.Name)
	case errors.Is(err, ledger.ErrAlreadyVoted):
		return "You have already voted on this proposal."
	case errors.Is(err, ledger.ErrNoContributionRecord):
		return "You have not contributed to this project."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Amount must be greater than zero."
	case errors.Is(err, ledger.ErrInvalidChoice):
		return "Vote choice must be 'yes' or 'no'."
	default:
		return "Something went wrong, please try again."
	}
}

func upper(c model.VoteChoice) string {
	return strings.ToUpper(string(c))
}
