package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Time
}

func (f *fakeSweeper) SweepExpired(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return 1
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeReaper struct {
	ttl time.Duration
}

func (f *fakeReaper) ReapIdle(ttl time.Duration) []string {
	f.ttl = ttl
	return []string{"s-1", "s-2"}
}

func TestDeadlineSweepJobExecute(t *testing.T) {
	sweeper := &fakeSweeper{}
	job := NewDeadlineSweepJob(sweeper, time.Minute)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	job.Execute()
	assert.Equal(t, []time.Time{fixed}, sweeper.calls)
	assert.Equal(t, "campaign_deadline_sweeper", job.GetName())
}

func TestSessionReaperJobExecute(t *testing.T) {
	reaper := &fakeReaper{}
	job := NewSessionReaperJob(reaper, 30*time.Minute, time.Minute)

	job.Execute()
	assert.Equal(t, 30*time.Minute, reaper.ttl)
	assert.Equal(t, "idle_session_reaper", job.GetName())
}

func TestManagerRunsRegisteredJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, err := NewManager()
	require.NoError(t, err)

	sweeper := &fakeSweeper{}
	require.NoError(t, m.Register(NewDeadlineSweepJob(sweeper, 20*time.Millisecond)))
	require.NoError(t, m.Register(NewSessionReaperJob(&fakeReaper{}, time.Minute, time.Hour)))
	assert.ElementsMatch(t, []string{"campaign_deadline_sweeper", "idle_session_reaper"}, m.Jobs())

	m.Start()
	assert.Eventually(t, func() bool { return sweeper.count() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
}

func TestRegisterRejectsInvalidSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, err := NewManager()
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Stop()) }()

	assert.Error(t, m.Register(NewDeadlineSweepJob(&fakeSweeper{}, 0)))
}
