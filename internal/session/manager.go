package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blues/daochat/internal/chat"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is busy with another message")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrHandlerPanic    = errors.New("message handler panicked")
)

const releaseTimeout = 5 * time.Second

// Manager 会话管理器。每个会话独立持有账本，消息处理在共享协程池中执行
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	dispatcher    *chat.Dispatcher
	seed          []model.Campaign
	storeOpts     []ledger.Option
	maxConcurrent int
	pool          *ants.Pool
	now           func() time.Time
}

// Option 管理器选项
type Option func(*Manager)

// WithMaxConcurrent 同时处理的消息数上限
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) { m.maxConcurrent = n }
}

// WithClock 替换时钟，测试使用
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLedgerOptions 创建账本时附加的选项
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(m *Manager) { m.storeOpts = append(m.storeOpts, opts...) }
}

// NewManager 创建会话管理器，seed 为每个新会话的初始项目
func NewManager(dispatcher *chat.Dispatcher, seed []model.Campaign, opts ...Option) (*Manager, error) {
	m := &Manager{
		sessions:      make(map[string]*Session),
		dispatcher:    dispatcher,
		seed:          seed,
		maxConcurrent: 16,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	pool, err := ants.NewPool(m.maxConcurrent, ants.WithPanicHandler(func(p interface{}) {
		logger.Error("Message handler panicked: %v", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	m.pool = pool
	return m, nil
}

// Create 连接新钱包并创建会话，返回欢迎消息
func (m *Manager) Create() (*Session, model.Message, error) {
	now := m.now()
	store := ledger.NewStore(m.seed, m.storeOpts...)
	if _, err := store.ConnectWallet(); err != nil {
		return nil, model.Message{}, fmt.Errorf("failed to connect wallet: %w", err)
	}

	s := newSession(uuid.NewString(), store, now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	profile, _ := s.Profile()
	logger.Info("Session %s created for wallet %s", s.ID, profile.Address)
	return s, m.dispatcher.Welcome(), nil
}

// Get 查找会话
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete 结束会话，账本随之丢弃
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	logger.Info("Session %s closed", id)
	return true
}

// Len 当前会话数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Send 处理用户输入，返回用户消息和机器人回复
func (m *Manager) Send(ctx context.Context, id, text string) (model.Message, model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, model.Message{}, ErrEmptyMessage
	}

	var reply model.Message
	err := m.withSession(ctx, id, func(s *Session) error {
		reply = m.dispatcher.Reply(ctx, s.state, text)
		return nil
	})
	if err != nil {
		return model.Message{}, model.Message{}, err
	}
	return m.dispatcher.UserMessage(text), reply, nil
}

// Select 用户点击消息上的按钮
func (m *Manager) Select(ctx context.Context, id, actionID string) (model.Message, model.Message, error) {
	var echo, reply model.Message
	err := m.withSession(ctx, id, func(s *Session) error {
		var err error
		echo, reply, err = m.dispatcher.Select(ctx, s.state, actionID)
		return err
	})
	return echo, reply, err
}

// withSession 占用会话并在协程池中执行 fn。fn 执行完毕后才释放会话
func (m *Manager) withSession(ctx context.Context, id string, fn func(s *Session) error) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	if !s.acquire() {
		return ErrSessionBusy
	}
	defer s.release()
	s.touch(m.now())

	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		done     = make(chan struct{})
		finished bool
		fnErr    error
	)
	if err := m.pool.Submit(func() {
		defer close(done)
		fnErr = fn(s)
		finished = true
	}); err != nil {
		return fmt.Errorf("failed to submit message: %w", err)
	}
	<-done

	if !finished {
		return ErrHandlerPanic
	}
	return fnErr
}

// ReapIdle 移除空闲超过 ttl 且未在处理消息的会话
func (m *Manager) ReapIdle(ttl time.Duration) []string {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	var reaped []string
	for id, s := range m.sessions {
		if s.Busy() || s.LastActive().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		reaped = append(reaped, id)
	}
	return reaped
}

// SweepExpired 对所有会话的账本执行截止时间检查，返回被置为失败的项目数
func (m *Manager) SweepExpired(now time.Time) int {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	failed := 0
	for _, s := range sessions {
		failed += len(s.store.SweepExpired(now))
	}
	return failed
}

// PoolStats 协程池状态
func (m *Manager) PoolStats() (running, capacity int) {
	return m.pool.Running(), m.pool.Cap()
}

// Close 释放协程池并等待正在执行的消息结束
func (m *Manager) Close() error {
	if err := m.pool.ReleaseTimeout(releaseTimeout); err != nil {
		return fmt.Errorf("failed to release worker pool: %w", err)
	}
	return nil
}
