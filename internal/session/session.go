package session

import (
	"sync/atomic"
	"time"

	"github.com/blues/daochat/internal/chat"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/model"
)

// Session 一个已连接钱包的对话会话，拥有独立的账本和待确认表
type Session struct {
	ID        string
	CreatedAt time.Time

	store      *ledger.Store
	state      *chat.State
	busy       atomic.Bool
	lastActive atomic.Int64
}

func newSession(id string, store *ledger.Store, now time.Time) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		store:     store,
		state:     chat.NewState(id, store),
	}
	s.touch(now)
	return s
}

// Profile 当前会话的用户资料
func (s *Session) Profile() (model.UserProfile, bool) {
	return s.store.Profile()
}

// Campaigns 当前会话看到的项目列表
func (s *Session) Campaigns() []model.Campaign {
	return s.store.ListCampaigns()
}

// LastActive 最近一次处理消息的时间
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Busy 是否正在处理消息
func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// acquire 同一会话同时只处理一条消息，不排队
func (s *Session) acquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *Session) release() {
	s.busy.Store(false)
}
