package intent

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reHelp        = regexp.MustCompile(`^(help|hi|hello|hey)\b|what can you do`)
	reProjects    = regexp.MustCompile(`\b(show|list|see|view)\b.*\b(projects|campaigns)\b|^(projects|campaigns)$`)
	reLeaderboard = regexp.MustCompile(`(?:leaderboard|top contributors)(?:\s+(?:for|of))?\s*(.*)$`)
	reProfile     = regexp.MustCompile(`\bmy (profile|wallet|badges|reputation)\b|^(profile|wallet)$`)
	reVote        = regexp.MustCompile(`^vote\s+(yes|no)\s+on\s+(\S+)\s+(?:for|in)\s+(.+)$`)
	reContribute  = regexp.MustCompile(`\b(?:contribute|donate|fund|give|send)\s+([0-9]*\.?[0-9]+)\s*(?:eth)?\s+(?:to\s+)?(.+)$`)
	reStatus      = regexp.MustCompile(`^(?:what(?:'s| is) the )?status(?:\s+(?:of|for))?\s*(.*?)\??$`)
)

// RuleClassifier 基于正则的意图识别，不依赖外部服务
type RuleClassifier struct{}

// NewRuleClassifier 创建规则识别器
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify 实现 Classifier，按固定顺序尝试每条规则，均不匹配时返回 KindUnknown
func (r *RuleClassifier) Classify(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s := strings.ToLower(strings.Join(strings.Fields(text), " "))

	if m := reVote.FindStringSubmatch(s); m != nil {
		return Result{Kind: KindVote, Params: Params{
			VoteChoice:  m[1],
			ProposalID:  strings.ToUpper(m[2]),
			ProjectName: cleanName(m[3]),
		}}, nil
	}
	if m := reContribute.FindStringSubmatch(s); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return Result{Kind: KindContribute}, nil
		}
		return Result{Kind: KindContribute, Params: Params{
			Amount:      &amount,
			ProjectName: cleanName(m[2]),
		}}, nil
	}
	if m := reLeaderboard.FindStringSubmatch(s); m != nil {
		return Result{Kind: KindGetLeaderboard, Params: Params{ProjectName: cleanName(m[1])}}, nil
	}
	if m := reStatus.FindStringSubmatch(s); m != nil {
		return Result{Kind: KindGetStatus, Params: Params{ProjectName: cleanName(m[1])}}, nil
	}
	if reProfile.MatchString(s) {
		return Result{Kind: KindShowProfile}, nil
	}
	if reProjects.MatchString(s) {
		return Result{Kind: KindShowProjects}, nil
	}
	if reHelp.MatchString(s) {
		return Result{Kind: KindHelp}, nil
	}
	return Result{Kind: KindUnknown}, nil
}

// Name 识别器名称
func (r *RuleClassifier) Name() string {
	return "rules"
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?.!")
	s = strings.TrimPrefix(s, "the ")
	return strings.TrimSpace(s)
}
