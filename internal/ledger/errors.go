package ledger

import "errors"

// 账本错误，全部可恢复，由对话层转换为提示文本
var (
	ErrNoWallet             = errors.New("no wallet connected")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrNotActive            = errors.New("campaign is not active")
	ErrWrongStatus          = errors.New("campaign is not in a withdrawable status")
	ErrNotAContributor      = errors.New("not a contributor")
	ErrAlreadyVoted         = errors.New("already voted")
	ErrNoContributionRecord = errors.New("no contribution record")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidChoice        = errors.New("vote choice must be yes or no")
)
