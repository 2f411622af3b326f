package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPrewarmer struct {
	mu    sync.Mutex
	calls [][]string
	err   error
	block chan struct{}
}

func (r *recordingPrewarmer) Prewarm(_ context.Context, places []string) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, places)
	return r.err
}

func (r *recordingPrewarmer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSchedulerRunsOnStart(t *testing.T) {
	p := &recordingPrewarmer{}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.count() == 1 }, time.Second, 5*time.Millisecond)

	status := s.GetStatus()
	assert.Equal(t, true, status["running"])
	assert.Contains(t, status, "next_run")
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(&recordingPrewarmer{}, nil, "every so often", zap.NewNop())
	assert.Error(t, s.Start())
}

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	p := &recordingPrewarmer{block: make(chan struct{})}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	go s.runPrewarm()
	assert.Eventually(t, func() bool {
		return s.GetStatus()["busy"] == true
	}, time.Second, time.Millisecond)

	s.runPrewarm() // returns immediately while the first is blocked
	close(p.block)

	assert.Eventually(t, func() bool { return s.GetStatus()["busy"] == false }, time.Second, time.Millisecond)
	assert.Equal(t, 1, p.count())
}

func TestSchedulerRecordsLastError(t *testing.T) {
	p := &recordingPrewarmer{err: errors.New("nominatim down")}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	s.runPrewarm()
	s.UpdatePlaces([]string{"Kochi"})
	s.runPrewarm()

	status := s.GetStatus()
	assert.Equal(t, "nominatim down", status["last_error"])
	assert.Equal(t, []string{"Kochi"}, p.calls[1])
}

func TestSchedulerStopWaitsForStartupRun(t *testing.T) {
	p := &recordingPrewarmer{block: make(chan struct{})}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start())
	time.AfterFunc(20*time.Millisecond, func() { close(p.block) })
	s.Stop()

	assert.Equal(t, 1, p.count())
	assert.Equal(t, false, s.GetStatus()["running"])
}

func TestSchedulerRestartKeepsOneJob(t *testing.T) {
	p := &recordingPrewarmer{}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start())
	s.Stop()
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
	assert.Eventually(t, func() bool { return p.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestSchedulerForceRun(t *testing.T) {
	p := &recordingPrewarmer{}
	s := NewScheduler(p, []string{"Madurai"}, "@every 1h", zap.NewNop())

	s.UpdatePlaces([]string{"Guntur"})
	s.ForceRun()

	assert.Eventually(t, func() bool { return p.count() == 1 }, time.Second, 5*time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, []string{"Guntur"}, p.calls[0])
}
