package scheduler

import (
	"time"

	"github.com/blues/daochat/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// ExpirySweeper 将过期未达标的项目置为失败
type ExpirySweeper interface {
	SweepExpired(now time.Time) int
}

// DeadlineSweepJob 项目截止时间检查任务
type DeadlineSweepJob struct {
	sweeper  ExpirySweeper
	interval time.Duration
	now      func() time.Time
}

// NewDeadlineSweepJob 创建截止时间检查任务
func NewDeadlineSweepJob(sweeper ExpirySweeper, interval time.Duration) *DeadlineSweepJob {
	return &DeadlineSweepJob{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
	}
}

// GetName 获取任务名称
func (j *DeadlineSweepJob) GetName() string {
	return "campaign_deadline_sweeper"
}

// GetSchedule 获取调度配置
func (j *DeadlineSweepJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *DeadlineSweepJob) Execute() {
	failed := j.sweeper.SweepExpired(j.now())
	if failed > 0 {
		logger.Info("Deadline sweep completed. Marked %d campaigns as failed", failed)
	}
}
