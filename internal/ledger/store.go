package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blues/daochat/internal/model"
	"github.com/blues/daochat/internal/wallet"
	"github.com/shopspring/decimal"
)

var (
	contributionRewardRate = decimal.NewFromInt(10)
	voteReward             = decimal.NewFromInt(5)
)

// Store 内存账本：项目与当前连接的用户。所有读写在同一把锁下完成，
// 查询返回快照，调用方不会观察到部分更新
type Store struct {
	mu        sync.Mutex
	campaigns []*model.Campaign
	profile   *model.UserProfile
	wallet    wallet.Generator
	now       func() time.Time
}

// Option 账本选项
type Option func(*Store)

// WithClock 替换时钟，测试使用
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithWallet 替换地址/哈希生成器
func WithWallet(g wallet.Generator) Option {
	return func(s *Store) { s.wallet = g }
}

// NewStore 以种子数据创建账本，种子会被深拷贝
func NewStore(seed []model.Campaign, opts ...Option) *Store {
	s := &Store{
		campaigns: make([]*model.Campaign, 0, len(seed)),
		wallet:    wallet.NewRandomGenerator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range seed {
		c := seed[i].Clone()
		s.campaigns = append(s.campaigns, &c)
	}
	return s
}

// ConnectWallet 生成新地址并替换当前用户
func (s *Store) ConnectWallet() (model.UserProfile, error) {
	address, err := s.wallet.NewAddress()
	if err != nil {
		return model.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = &model.UserProfile{
		Address:       address,
		Reputation:    decimal.Zero,
		Badges:        []model.NFTBadge{},
		Contributions: []model.ContributionRecord{},
	}
	return s.profile.Clone(), nil
}

// Profile 返回当前用户
func (s *Store) Profile() (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return model.UserProfile{}, false
	}
	return s.profile.Clone(), true
}

// ListCampaigns 按插入顺序返回所有项目
func (s *Store) ListCampaigns() []model.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Campaign, len(s.campaigns))
	for i, c := range s.campaigns {
		out[i] = c.Clone()
	}
	return out
}

// FindCampaign 按存储顺序返回第一个 ID 相等或名称包含 query 的项目（均不区分大小写）。
// ID 精确匹配没有更高优先级
func (s *Store) FindCampaign(query string) (model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(query)
	if c == nil {
		return model.Campaign{}, fmt.Errorf("%w: %q", ErrCampaignNotFound, query)
	}
	return c.Clone(), nil
}

// Campaign 按 ID 精确查找，不区分大小写
func (s *Store) Campaign(id string) (model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byID(id)
	if c == nil {
		return model.Campaign{}, fmt.Errorf("%w: %q", ErrCampaignNotFound, id)
	}
	return c.Clone(), nil
}

// Leaderboard 按金额降序返回贡献者，金额相同保持原顺序
func (s *Store) Leaderboard(campaignID string) ([]model.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byID(campaignID)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
	}

	out := make([]model.Contribution, len(c.Contributors))
	copy(out, c.Contributors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out, nil
}

// ContributeResult 贡献结果
type ContributeResult struct {
	Campaign model.Campaign
	Amount   decimal.Decimal
	TxHash   string
	Badge    model.NFTBadge
	Message  string
}

// Contribute 向进行中的项目贡献资金：累加贡献者记录、追加用户历史、
// 铸造一枚徽章、增加声誉，并在达到目标后将项目置为成功
func (s *Store) Contribute(campaignID string, amount decimal.Decimal) (ContributeResult, error) {
	if !amount.IsPositive() {
		return ContributeResult{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return ContributeResult{}, ErrNoWallet
	}
	c := s.byID(campaignID)
	if c == nil {
		return ContributeResult{}, fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
	}
	if c.Status != model.CampaignStatusActive {
		return ContributeResult{Campaign: c.Clone()}, fmt.Errorf("%w: current status %s", ErrNotActive, c.Status)
	}

	// 哈希失败时不修改任何状态
	txHash, err := s.wallet.NewTxHash([]byte(c.ID), []byte(s.profile.Address), []byte(amount.String()))
	if err != nil {
		return ContributeResult{}, err
	}
	now := s.now()
	user := s.profile

	c.CurrentFunding = c.CurrentFunding.Add(amount)
	if i := c.ContributorIndex(user.Address); i >= 0 {
		c.Contributors[i].Amount = c.Contributors[i].Amount.Add(amount)
	} else {
		c.Contributors = append(c.Contributors, model.Contribution{Address: user.Address, Amount: amount})
	}

	user.Contributions = append(user.Contributions, model.ContributionRecord{
		CampaignID: c.ID,
		Amount:     amount,
		TxHash:     txHash,
		CreatedAt:  now,
	})

	badge := model.NFTBadge{
		ID:       fmt.Sprintf("NFT-%s-%d", c.ID, len(user.Badges)+1),
		Name:     fmt.Sprintf("%s Contributor Badge", c.Name),
		Tier:     model.TierFor(amount),
		Campaign: c.Name,
		IssuedAt: now,
	}
	user.Badges = append(user.Badges, badge)
	user.Reputation = user.Reputation.Add(amount.Mul(contributionRewardRate))

	if c.CurrentFunding.GreaterThanOrEqual(c.FundingGoal) {
		c.Status = model.CampaignStatusSuccessful
	}

	return ContributeResult{
		Campaign: c.Clone(),
		Amount:   amount,
		TxHash:   txHash,
		Badge:    badge,
		Message:  fmt.Sprintf("Successfully contributed %s ETH to %s.", amount.String(), c.Name),
	}, nil
}

// VoteResult 投票结果
type VoteResult struct {
	Campaign   model.Campaign
	ProposalID string
	Choice     model.VoteChoice
	Message    string
}

// Vote 项目贡献者对提案投票，每个地址每个提案只能投一次
func (s *Store) Vote(campaignID, proposalID string, choice model.VoteChoice) (VoteResult, error) {
	if choice != model.VoteYes && choice != model.VoteNo {
		return VoteResult{}, ErrInvalidChoice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return VoteResult{}, ErrNoWallet
	}
	c := s.byID(campaignID)
	if c == nil {
		return VoteResult{}, fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
	}
	proposal, ok := c.Proposal(proposalID)
	if !ok {
		return VoteResult{Campaign: c.Clone()}, fmt.Errorf("%w: %q", ErrProposalNotFound, proposalID)
	}
	if !c.HasContributor(s.profile.Address) {
		return VoteResult{Campaign: c.Clone()}, ErrNotAContributor
	}
	if proposal.HasVoted(s.profile.Address) {
		return VoteResult{Campaign: c.Clone()}, ErrAlreadyVoted
	}

	switch choice {
	case model.VoteYes:
		proposal.Votes.Yes++
	case model.VoteNo:
		proposal.Votes.No++
	}
	proposal.Voters = append(proposal.Voters, s.profile.Address)
	s.profile.Reputation = s.profile.Reputation.Add(voteReward)

	return VoteResult{
		Campaign:   c.Clone(),
		ProposalID: proposal.ID,
		Choice:     choice,
		Message: fmt.Sprintf("Your vote of '%s' for proposal %s has been recorded.",
			strings.ToUpper(string(choice)), proposal.ID),
	}, nil
}

// WithdrawResult 撤资结果
type WithdrawResult struct {
	Campaign model.Campaign
	Amount   decimal.Decimal
	Message  string
}

// Withdraw 从失败项目中一次性撤回全部贡献。用户侧贡献历史保持不变
func (s *Store) Withdraw(campaignID string) (WithdrawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return WithdrawResult{}, ErrNoWallet
	}
	c := s.byID(campaignID)
	if c == nil {
		return WithdrawResult{}, fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
	}
	if c.Status != model.CampaignStatusFailed {
		return WithdrawResult{Campaign: c.Clone()}, fmt.Errorf("%w: current status %s", ErrWrongStatus, c.Status)
	}
	i := c.ContributorIndex(s.profile.Address)
	if i < 0 {
		return WithdrawResult{Campaign: c.Clone()}, ErrNoContributionRecord
	}

	amount := c.Contributors[i].Amount
	c.Contributors = append(c.Contributors[:i], c.Contributors[i+1:]...)
	c.CurrentFunding = c.CurrentFunding.Sub(amount)

	return WithdrawResult{
		Campaign: c.Clone(),
		Amount:   amount,
		Message:  fmt.Sprintf("Successfully withdrew your %s ETH from %s.", amount.String(), c.Name),
	}, nil
}

// SweepExpired 将截止时间已过且未达标的进行中项目置为失败，返回被修改的项目ID
func (s *Store) SweepExpired(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failed []string
	for _, c := range s.campaigns {
		if c.Status != model.CampaignStatusActive || !now.After(c.Deadline) {
			continue
		}
		if c.CurrentFunding.LessThan(c.FundingGoal) {
			c.Status = model.CampaignStatusFailed
			failed = append(failed, c.ID)
		}
	}
	return failed
}

func (s *Store) find(query string) *model.Campaign {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	for _, c := range s.campaigns {
		if strings.ToLower(c.ID) == q || strings.Contains(strings.ToLower(c.Name), q) {
			return c
		}
	}
	return nil
}

func (s *Store) byID(id string) *model.Campaign {
	for _, c := range s.campaigns {
		if strings.EqualFold(c.ID, id) {
			return c
		}
	}
	return nil
}
