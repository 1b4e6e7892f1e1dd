package scheduler

import (
	"time"

	"github.com/blues/daochat/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// IdleReaper 清理空闲会话
type IdleReaper interface {
	ReapIdle(ttl time.Duration) []string
}

// SessionReaperJob 空闲会话清理任务
type SessionReaperJob struct {
	reaper   IdleReaper
	ttl      time.Duration
	interval time.Duration
}

// NewSessionReaperJob 创建空闲会话清理任务
func NewSessionReaperJob(reaper IdleReaper, ttl, interval time.Duration) *SessionReaperJob {
	return &SessionReaperJob{
		reaper:   reaper,
		ttl:      ttl,
		interval: interval,
	}
}

// GetName 获取任务名称
func (j *SessionReaperJob) GetName() string {
	return "idle_session_reaper"
}

// GetSchedule 获取调度配置
func (j *SessionReaperJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *SessionReaperJob) Execute() {
	reaped := j.reaper.ReapIdle(j.ttl)
	for _, id := range reaped {
		logger.Info("Reaped idle session %s", id)
	}
}
