package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/source"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricPipeline(t *testing.T) {
	t.Parallel()

	t.Run("nil source should error", func(t *testing.T) {
		t.Parallel()

		pipe, err := NewMetricPipeline(nil, time.Minute)

		assert.Nil(t, pipe)
		assert.True(t, pipe.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil source")
	})
	t.Run("invalid refresh interval should error", func(t *testing.T) {
		t.Parallel()

		pipe, err := NewMetricPipeline(&testsCommon.SourceStub{}, 0)

		assert.Nil(t, pipe)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid refresh interval")
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		pipe, err := NewMetricPipeline(&testsCommon.SourceStub{}, time.Minute)

		assert.NotNil(t, pipe)
		assert.False(t, pipe.IsInterfaceNil())
		assert.Nil(t, err)
	})
}

func TestMetricPipeline_ColdStart(t *testing.T) {
	t.Parallel()

	pipe, _ := NewMetricPipeline(&testsCommon.SourceStub{}, time.Minute)

	// every period/metric pair reads as the zero snapshot before any refresh
	snapshot := pipe.GetMetric("Last 7 Days", "TOTAL_USERS")
	assert.Equal(t, common.Snapshot{Value: 0, Target: 0}, snapshot)
	assert.False(t, pipe.HasPeriodData("Last 7 Days"))

	status := pipe.Status()
	assert.True(t, status.LastAttempt.IsZero())
	assert.True(t, status.LastSuccess.IsZero())
	assert.Empty(t, status.LastError)
	assert.False(t, status.HasSnapshot)
}

func TestMetricPipeline_Refresh(t *testing.T) {
	t.Parallel()

	successPayload := common.RawPayload{
		Periods: map[string]map[string]float64{
			"Last 7 Days": {
				"Total Registered Users": 500,
			},
		},
	}

	t.Run("successful refresh publishes the normalized snapshot", func(t *testing.T) {
		t.Parallel()

		stub := &testsCommon.SourceStub{
			FetchMetricsHandler: func(ctx context.Context) (common.RawPayload, error) {
				return successPayload, nil
			},
		}
		pipe, _ := NewMetricPipeline(stub, time.Minute)

		pipe.Refresh(context.Background())

		assert.Equal(t, common.Snapshot{Value: 500, Target: 600}, pipe.GetMetric("Last 7 Days", "TOTAL_USERS"))
		assert.True(t, pipe.HasPeriodData("Last 7 Days"))
		assert.False(t, pipe.HasPeriodData("All Time"))

		status := pipe.Status()
		assert.False(t, status.LastAttempt.IsZero())
		assert.Equal(t, status.LastAttempt, status.LastSuccess)
		assert.Empty(t, status.LastError)
		assert.Empty(t, status.LastErrorKind)
		assert.True(t, status.HasSnapshot)
	})
	t.Run("failed refresh keeps the last snapshot and success timestamp", func(t *testing.T) {
		t.Parallel()

		var failing atomic.Bool
		stub := &testsCommon.SourceStub{
			FetchMetricsHandler: func(ctx context.Context) (common.RawPayload, error) {
				if failing.Load() {
					return common.RawPayload{}, &source.ResponseError{StatusCode: 500}
				}
				return successPayload, nil
			},
		}
		pipe, _ := NewMetricPipeline(stub, time.Minute)

		pipe.Refresh(context.Background())
		statusAfterSuccess := pipe.Status()

		failing.Store(true)
		time.Sleep(10 * time.Millisecond) // keep the two attempt timestamps apart
		pipe.Refresh(context.Background())

		// displayed data is untouched
		assert.Equal(t, common.Snapshot{Value: 500, Target: 600}, pipe.GetMetric("Last 7 Days", "TOTAL_USERS"))

		status := pipe.Status()
		assert.Equal(t, statusAfterSuccess.LastSuccess, status.LastSuccess)
		assert.True(t, status.LastAttempt.After(status.LastSuccess))
		assert.Equal(t, "response", status.LastErrorKind)
		assert.Contains(t, status.LastError, "500")
		assert.True(t, status.HasSnapshot)
	})
	t.Run("successful refresh clears a previous error", func(t *testing.T) {
		t.Parallel()

		var failing atomic.Bool
		failing.Store(true)
		stub := &testsCommon.SourceStub{
			FetchMetricsHandler: func(ctx context.Context) (common.RawPayload, error) {
				if failing.Load() {
					return common.RawPayload{}, &source.TransportError{Err: context.DeadlineExceeded}
				}
				return successPayload, nil
			},
		}
		pipe, _ := NewMetricPipeline(stub, time.Minute)

		pipe.Refresh(context.Background())
		require.Equal(t, "transport", pipe.Status().LastErrorKind)

		failing.Store(false)
		pipe.Refresh(context.Background())

		status := pipe.Status()
		assert.Empty(t, status.LastError)
		assert.Empty(t, status.LastErrorKind)
	})
	t.Run("a refresh in flight suppresses concurrent calls", func(t *testing.T) {
		t.Parallel()

		var numFetches atomic.Int32
		release := make(chan struct{})
		stub := &testsCommon.SourceStub{
			FetchMetricsHandler: func(ctx context.Context) (common.RawPayload, error) {
				numFetches.Add(1)
				<-release
				return successPayload, nil
			},
		}
		pipe, _ := NewMetricPipeline(stub, time.Minute)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			pipe.Refresh(context.Background())
		}()

		// wait for the first refresh to reach the fetch
		require.Eventually(t, func() bool {
			return numFetches.Load() == 1
		}, time.Second, 10*time.Millisecond)

		// these must be suppressed without touching any state
		pipe.Refresh(context.Background())
		pipe.Refresh(context.Background())
		assert.True(t, pipe.Status().LastAttempt.IsZero())

		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), numFetches.Load())
		assert.True(t, pipe.HasPeriodData("Last 7 Days"))
	})
}

func TestMetricPipeline_StartClose(t *testing.T) {
	t.Parallel()

	var numFetches atomic.Int32
	stub := &testsCommon.SourceStub{
		FetchMetricsHandler: func(ctx context.Context) (common.RawPayload, error) {
			numFetches.Add(1)
			return common.RawPayload{}, nil
		},
	}
	pipe, _ := NewMetricPipeline(stub, 50*time.Millisecond)

	pipe.Start()
	pipe.Start() // second Start is a no-op

	// the first refresh fires immediately, then the timer takes over
	require.Eventually(t, func() bool {
		return numFetches.Load() >= 2
	}, time.Second, 10*time.Millisecond)

	pipe.Close()
	time.Sleep(100 * time.Millisecond) // let any tick that raced Close drain
	fetchesAtClose := numFetches.Load()

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, fetchesAtClose, numFetches.Load(), "timer should not fire after Close")

	pipe.Close() // idempotent
}
