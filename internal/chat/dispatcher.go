package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blues/daochat/internal/intent"
	"github.com/blues/daochat/internal/journal"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnknownAction 按钮不存在或已被取消
var ErrUnknownAction = errors.New("unknown action")

// Ledger 对话层使用的账本操作，*ledger.Store 实现该接口
type Ledger interface {
	Profile() (model.UserProfile, bool)
	ListCampaigns() []model.Campaign
	FindCampaign(query string) (model.Campaign, error)
	Leaderboard(campaignID string) ([]model.Contribution, error)
	Contribute(campaignID string, amount decimal.Decimal) (ledger.ContributeResult, error)
	Vote(campaignID, proposalID string, choice model.VoteChoice) (ledger.VoteResult, error)
	Withdraw(campaignID string) (ledger.WithdrawResult, error)
}

// State 单个会话的对话状态
type State struct {
	SessionID string
	Ledger    Ledger
	Pending   *PendingTable
}

// NewState 创建会话状态
func NewState(sessionID string, l Ledger) *State {
	return &State{SessionID: sessionID, Ledger: l, Pending: NewPendingTable()}
}

type handlerFunc func(d *Dispatcher, ctx context.Context, st *State, p intent.Params) model.Message

// Dispatcher 将用户输入转换为一条机器人回复。Dispatcher 本身无状态，可被多个会话共享
type Dispatcher struct {
	classifier intent.Classifier
	journal    journal.Journal
	now        func() time.Time
	newID      func() string
	handlers   map[intent.Kind]handlerFunc
}

// Option 对话层选项
type Option func(*Dispatcher)

// WithJournal 成功的变更写入流水
func WithJournal(j journal.Journal) Option {
	return func(d *Dispatcher) { d.journal = j }
}

// WithClock 替换时钟，测试使用
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithIDGenerator 替换消息/按钮 ID 生成
func WithIDGenerator(newID func() string) Option {
	return func(d *Dispatcher) { d.newID = newID }
}

// NewDispatcher 创建对话分发器
func NewDispatcher(classifier intent.Classifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		classifier: classifier,
		journal:    journal.Nop{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[intent.Kind]handlerFunc{
		intent.KindShowProjects:   (*Dispatcher).showProjects,
		intent.KindGetStatus:      (*Dispatcher).status,
		intent.KindContribute:     (*Dispatcher).proposeContribution,
		intent.KindVote:           (*Dispatcher).proposeVote,
		intent.KindGetLeaderboard: (*Dispatcher).leaderboard,
		intent.KindShowProfile:    (*Dispatcher).showProfile,
		intent.KindHelp:           (*Dispatcher).help,
		intent.KindUnknown:        (*Dispatcher).unknown,
	}
	return d
}

// Welcome 连接钱包后的欢迎消息
func (d *Dispatcher) Welcome() model.Message {
	return d.bot(textWelcome, nil)
}

// UserMessage 记录用户输入
func (d *Dispatcher) UserMessage(text string) model.Message {
	return d.message(model.SenderUser, text, nil)
}

// Reply 处理一条输入：确认令牌直接执行，其余交给意图识别后分发。总是返回一条回复
func (d *Dispatcher) Reply(ctx context.Context, st *State, text string) model.Message {
	text = strings.TrimSpace(text)
	if IsCommand(text) {
		return d.runCommand(ctx, st, text)
	}

	res, err := d.classifier.Classify(ctx, text)
	if err != nil {
		logger.Error("Failed to classify message for session %s: %v", st.SessionID, err)
		return d.bot(textClassifierFailure, nil)
	}
	logger.Debug("Session %s classified message as %s", st.SessionID, res.Kind)
	return d.Dispatch(ctx, st, res)
}

// Dispatch 按意图调用对应处理函数，未知意图走默认分支
func (d *Dispatcher) Dispatch(ctx context.Context, st *State, res intent.Result) model.Message {
	h, ok := d.handlers[res.Kind]
	if !ok {
		h = (*Dispatcher).unknown
	}
	return h(d, ctx, st, res.Params)
}

// Select 用户点击按钮：返回按钮文字的回显和执行结果
func (d *Dispatcher) Select(ctx context.Context, st *State, actionID string) (model.Message, model.Message, error) {
	btn, ok := st.Pending.Button(actionID)
	if !ok {
		return model.Message{}, model.Message{}, ErrUnknownAction
	}
	echo := btn.DisplayText
	if echo == "" {
		echo = btn.Label
	}
	return d.UserMessage(echo), d.Reply(ctx, st, btn.Command), nil
}

func (d *Dispatcher) runCommand(ctx context.Context, st *State, text string) model.Message {
	cmd, ok := ParseCommand(text)
	if !ok {
		return d.bot(textUnknownCommand, nil)
	}

	switch cmd.Verb {
	case VerbCancel:
		// 取消不改变状态，同组的确认按钮仍然有效
		return d.bot(textCanceled, nil)
	case VerbConfirm:
		action, ok := st.Pending.Get(cmd.PendingID)
		if !ok {
			return d.bot(textUnknownCommand, nil)
		}
		return d.execute(ctx, st, action)
	}
	return d.bot(textUnknownCommand, nil)
}

func (d *Dispatcher) execute(ctx context.Context, st *State, action PendingAction) model.Message {
	switch a := action.(type) {
	case PendingContribution:
		return d.confirmContribution(ctx, st, a)
	case PendingVote:
		return d.confirmVote(ctx, st, a)
	case PendingWithdrawal:
		return d.confirmWithdrawal(ctx, st, a)
	default:
		return d.bot(textUnknownCommand, nil)
	}
}

// button 尚未登记的按钮
type button struct {
	verb    Verb
	label   string
	style   model.ActionStyle
	display string
}

func confirmButton(label, display string) button {
	return button{verb: VerbConfirm, label: label, style: model.ActionStylePrimary, display: display}
}

func cancelButton(display string) button {
	return button{verb: VerbCancel, label: "Cancel", style: model.ActionStyleSecondary, display: display}
}

// propose 登记待确认变更并生成带按钮的回复
func (d *Dispatcher) propose(st *State, text string, action PendingAction, buttons ...button) model.Message {
	pendingID := d.newID()
	actions := make([]model.Action, len(buttons))
	for i, b := range buttons {
		actions[i] = model.Action{
			ID:          d.newID(),
			Label:       b.label,
			Style:       b.style,
			Command:     EncodeCommand(Command{Verb: b.verb, PendingID: pendingID}),
			DisplayText: b.display,
		}
	}
	st.Pending.Put(pendingID, action, actions)

	msg := d.bot(text, nil)
	msg.Actions = actions
	return msg
}

func (d *Dispatcher) record(ctx context.Context, e journal.Entry) {
	e.At = d.now()
	if err := d.journal.Record(ctx, e); err != nil {
		logger.Warn("Failed to record %s for session %s: %v", e.Kind, e.SessionID, err)
	}
}

func (d *Dispatcher) bot(text string, view model.View) model.Message {
	return d.message(model.SenderBot, text, view)
}

func (d *Dispatcher) message(sender model.Sender, text string, view model.View) model.Message {
	msg := model.Message{
		ID:        d.newID(),
		Sender:    sender,
		Text:      text,
		CreatedAt: d.now(),
	}
	if view != nil {
		msg.Attachment = model.NewAttachment(view)
	}
	return msg
}
