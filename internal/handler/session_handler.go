package handler

import (
	"net/http"
	"time"

	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
	"github.com/blues/daochat/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler 会话处理器
type SessionHandler struct {
	sessions *session.Manager
	now      func() time.Time
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		now:      time.Now,
	}
}

// CreateSession 连接钱包并创建会话
func (h *SessionHandler) CreateSession(c *gin.Context) {
	s, welcome, err := h.sessions.Create()
	if err != nil {
		logger.Error("Failed to create session: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	profile, _ := s.Profile()
	SuccessResponse(c, http.StatusCreated, "会话创建成功", CreateSessionResponse{
		SessionID: s.ID,
		Profile:   profile,
		Messages:  []model.Message{welcome},
	})
}

// SendMessage 发送一条聊天消息
func (h *SessionHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}

	user, reply, err := h.sessions.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		sessionError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "消息处理成功", ExchangeResponse{Messages: []model.Message{user, reply}})
}

// SelectAction 点击消息上的按钮
func (h *SessionHandler) SelectAction(c *gin.Context) {
	echo, reply, err := h.sessions.Select(c.Request.Context(), c.Param("id"), c.Param("actionId"))
	if err != nil {
		sessionError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "操作处理成功", ExchangeResponse{Messages: []model.Message{echo, reply}})
}

// GetProfile 获取会话用户资料
func (h *SessionHandler) GetProfile(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}
	profile, ok := s.Profile()
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "钱包未连接")
		return
	}
	SuccessResponse(c, http.StatusOK, "获取用户资料成功", ProfileResponse{Profile: profile})
}

// GetCampaigns 获取会话内的项目列表
func (h *SessionHandler) GetCampaigns(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}

	now := h.now()
	campaigns := s.Campaigns()
	views := make([]model.CampaignView, len(campaigns))
	for i, campaign := range campaigns {
		views[i] = model.NewCampaignView(campaign, now)
	}
	SuccessResponse(c, http.StatusOK, "获取项目列表成功", CampaignsResponse{Campaigns: views})
}

// DeleteSession 结束会话
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		ErrorResponse(c, http.StatusNotFound, "会话不存在")
		return
	}
	SuccessResponse(c, http.StatusOK, "会话已结束", nil)
}
