package handler

import (
	"github.com/blues/daochat/internal/model"
)

// 会话相关请求/响应模型

// CreateSessionResponse 创建会话响应
type CreateSessionResponse struct {
	SessionID string            `json:"session_id"`
	Profile   model.UserProfile `json:"profile"`
	Messages  []model.Message   `json:"messages"`
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExchangeResponse 一问一答，第一条为用户消息，第二条为机器人回复
type ExchangeResponse struct {
	Messages []model.Message `json:"messages"`
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	Profile model.UserProfile `json:"profile"`
}

// CampaignsResponse 项目列表响应
type CampaignsResponse struct {
	Campaigns []model.CampaignView `json:"campaigns"`
}
