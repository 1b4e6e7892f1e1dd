package chat

import (
	"sync"

	"github.com/blues/daochat/internal/model"
	"github.com/shopspring/decimal"
)

// PendingAction 等待确认的变更，取值为 PendingContribution、PendingVote 或 PendingWithdrawal
type PendingAction interface {
	pending()
}

// PendingContribution 待确认的贡献
type PendingContribution struct {
	CampaignID   string
	CampaignName string
	Amount       decimal.Decimal
}

// PendingVote 待确认的投票
type PendingVote struct {
	CampaignID   string
	CampaignName string
	ProposalID   string
	Choice       model.VoteChoice
}

// PendingWithdrawal 待确认的撤资
type PendingWithdrawal struct {
	CampaignID   string
	CampaignName string
}

func (PendingContribution) pending() {}
func (PendingVote) pending() {}
func (PendingWithdrawal) pending() {}

type pendingEntry struct {
	action  PendingAction
	buttons []model.Action
}

// PendingTable 会话内的待确认变更。确认后不删除，可重复确认，由账本自身校验拒绝无效的重放
type PendingTable struct {
	mu      sync.Mutex
	entries map[string]*pendingEntry
}

// NewPendingTable 创建空表
func NewPendingTable() *PendingTable {
	return &PendingTable{entries: make(map[string]*pendingEntry)}
}

// Put 登记待确认变更及其按钮
func (t *PendingTable) Put(id string, a PendingAction, buttons []model.Action) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[id] = &pendingEntry{action: a, buttons: buttons}
}

// Get 查找待确认变更
func (t *PendingTable) Get(id string) (PendingAction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	return e.action, true
}

// Button 按按钮 ID 查找
func (t *PendingTable) Button(actionID string) (model.Action, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entries {
		for _, b := range e.buttons {
			if b.ID == actionID {
				return b, true
			}
		}
	}
	return model.Action{}, false
}

// Len 当前待确认数量
func (t *PendingTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
