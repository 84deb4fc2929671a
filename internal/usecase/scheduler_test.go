package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EconomyNewsletter/internal/sample"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualDriver) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func TestSchedulerRunsPipelineOnTrigger(t *testing.T) {
	t.Parallel()

	driver := &manualDriver{}
	pipeline := NewPipeline(PipelineDeps{Source: fakeSource{articles: sample.Articles()}, Clock: testClock})
	results := make(chan Result, 2)
	s := NewScheduler(driver, pipeline, nil, results)

	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(testClock())
	driver.job(testClock())

	first, second := <-results, <-results
	assert.Equal(t, StatusSuccess, first.Status)
	assert.Equal(t, StatusSuccess, second.Status)
	assert.NotEqual(t, first.RunID, second.RunID)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerReportsFailures(t *testing.T) {
	t.Parallel()

	driver := &manualDriver{}
	results := make(chan Result, 1)
	s := NewScheduler(driver, NewPipeline(PipelineDeps{Source: fakeSource{}}), nil, results)

	require.NoError(t, s.Start(context.Background()))
	driver.job(testClock())

	res := <-results
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, ErrNoArticles.Error(), res.Error)
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil, nil)

	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
