package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrClassifierFailure 意图识别调用失败或返回无法解析的结果
var ErrClassifierFailure = errors.New("intent classifier failure")

// Kind 封闭的意图集合
type Kind int

const (
	KindUnknown Kind = iota
	KindShowProjects
	KindGetStatus
	KindContribute
	KindVote
	KindGetLeaderboard
	KindShowProfile
	KindHelp
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindShowProjects:   "show_projects",
	KindGetStatus:      "get_status",
	KindContribute:     "contribute",
	KindVote:           "vote",
	KindGetLeaderboard: "get_leaderboard",
	KindShowProfile:    "show_profile",
	KindHelp:           "help",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Kinds 返回全部意图，顺序固定
func Kinds() []Kind {
	return []Kind{
		KindShowProjects, KindGetStatus, KindContribute, KindVote,
		KindGetLeaderboard, KindShowProfile, KindHelp, KindUnknown,
	}
}

// ParseKind 无法识别的标签一律归为 KindUnknown
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range kindNames {
		if name == s {
			return kind
		}
	}
	return KindUnknown
}

// Params 意图参数，全部可缺省
type Params struct {
	ProjectName string
	Amount      *decimal.Decimal
	ProposalID  string
	VoteChoice  string
}

// Result 意图识别结果
type Result struct {
	Kind   Kind
	Params Params
}

// Classifier 将自由文本映射为结构化意图
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// ClassifierFunc 函数适配器，测试使用
type ClassifierFunc func(ctx context.Context, text string) (Result, error)

func (f ClassifierFunc) Classify(ctx context.Context, text string) (Result, error) {
	return f(ctx, text)
}

// wireResult 模型返回的 JSON 格式
type wireResult struct {
	Intent     string `json:"intent"`
	Parameters *struct {
		ProjectName *string          `json:"projectName"`
		Amount      *decimal.Decimal `json:"amount"`
		ProposalID  *string          `json:"proposalId"`
		VoteChoice  *string          `json:"voteChoice"`
	} `json:"parameters"`
}

// DecodeResult 解析 {"intent": ..., "parameters": {...}}。缺失或为 null 的参数保持零值
func DecodeResult(data []byte) (Result, error) {
	raw := strings.TrimSpace(string(data))
	// 部分模型会把 JSON 包在 markdown 代码块里
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var w wireResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &w); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrClassifierFailure, err)
	}
	if w.Intent == "" {
		return Result{}, fmt.Errorf("%w: response has no intent", ErrClassifierFailure)
	}

	res := Result{Kind: ParseKind(w.Intent)}
	if p := w.Parameters; p != nil {
		res.Params.ProjectName = strings.TrimSpace(deref(p.ProjectName))
		res.Params.Amount = p.Amount
		res.Params.ProposalID = strings.TrimSpace(deref(p.ProposalID))
		res.Params.VoteChoice = strings.TrimSpace(deref(p.VoteChoice))
	}
	return res, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
