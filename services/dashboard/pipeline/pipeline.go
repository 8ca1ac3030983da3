package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gaugeboard/gauge-dashboard/commonGo"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("pipeline")

const fetchTimeout = 30 * time.Second

// kindedError is satisfied by the source's typed failures
type kindedError interface {
	Kind() string
}

// metricPipeline owns the refresh cycle: it fetches the raw payload, normalizes it and publishes the
// result as the snapshot served to the display layer. The snapshot map is replaced wholesale on a
// successful refresh and never mutated in place, so readers always observe a self-consistent state.
type metricPipeline struct {
	source          Source
	refreshInterval time.Duration
	refreshing      atomic.Bool

	mutState    sync.RWMutex
	snapshot    map[string]map[string]common.Snapshot
	lastAttempt time.Time
	lastSuccess time.Time
	lastError   error

	mutCancel sync.Mutex
	cancel    func()
}

// NewMetricPipeline creates a new pipeline instance. The refresh timer is not started here, call
// Start for that.
func NewMetricPipeline(source Source, refreshInterval time.Duration) (*metricPipeline, error) {
	if check.IfNil(source) {
		return nil, errors.New("nil source")
	}
	if refreshInterval <= 0 {
		return nil, errors.New("invalid refresh interval")
	}

	return &metricPipeline{
		source:          source,
		refreshInterval: refreshInterval,
	}, nil
}

// Refresh runs one complete fetch-normalize-publish cycle. A cycle already in flight suppresses the
// new call entirely: the suppressed tick is not an attempt and touches no state. On failure the last
// snapshot and last success timestamp are kept so the display continues to show the last good data.
func (p *metricPipeline) Refresh(ctx context.Context) {
	if !p.refreshing.CompareAndSwap(false, true) {
		log.Debug("refresh already in flight, skipping tick")
		return
	}
	defer p.refreshing.Store(false)

	fetchCtx, cancelFetch := context.WithTimeout(ctx, fetchTimeout)
	defer cancelFetch()

	raw, err := p.source.FetchMetrics(fetchCtx)
	if err != nil {
		log.Warn("metrics refresh failed, keeping last snapshot", "error", err)

		p.mutState.Lock()
		p.lastAttempt = time.Now()
		p.lastError = err
		p.mutState.Unlock()

		return
	}

	normalized := metrics.Normalize(raw)

	p.mutState.Lock()
	now := time.Now()
	p.snapshot = normalized
	p.lastAttempt = now
	p.lastSuccess = now
	p.lastError = nil
	p.mutState.Unlock()

	log.Debug("metrics refresh succeeded", "periods", len(normalized))
}

// Start triggers an immediate refresh and schedules the recurring timer. Calling Start on an already
// started pipeline does nothing.
func (p *metricPipeline) Start() {
	p.mutCancel.Lock()
	defer p.mutCancel.Unlock()

	if p.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, p.cancel = context.WithCancel(context.Background())

	commonGo.CronJobStarter(ctx, p.Refresh, p.refreshInterval)
}

// Close stops the refresh timer. An in-flight fetch is abandoned through its context; no further
// ticks fire after Close returns. Close is idempotent.
func (p *metricPipeline) Close() {
	p.mutCancel.Lock()
	defer p.mutCancel.Unlock()

	if p.cancel == nil {
		return
	}

	p.cancel()
	p.cancel = nil
}

// GetMetric returns the last known snapshot for the period/metric pair. It never fails: before the
// first successful refresh, or for a period or metric absent from the snapshot, it returns the zero
// snapshot so a cold display can always render.
func (p *metricPipeline) GetMetric(period string, metricKey string) common.Snapshot {
	p.mutState.RLock()
	defer p.mutState.RUnlock()

	return p.snapshot[period][metricKey]
}

// HasPeriodData returns true when the last snapshot carries data for the provided period
func (p *metricPipeline) HasPeriodData(period string) bool {
	p.mutState.RLock()
	defer p.mutState.RUnlock()

	_, found := p.snapshot[period]

	return found
}

// Status returns a self-consistent view of the refresh state machine: last attempt and last success
// timestamps move independently, letting an operator tell a stale-but-displayed snapshot from a
// fresh one
func (p *metricPipeline) Status() common.PipelineStatus {
	p.mutState.RLock()
	defer p.mutState.RUnlock()

	status := common.PipelineStatus{
		LastAttempt: p.lastAttempt,
		LastSuccess: p.lastSuccess,
		Refreshing:  p.refreshing.Load(),
		HasSnapshot: p.snapshot != nil,
	}
	if p.lastError != nil {
		status.LastError = p.lastError.Error()
		status.LastErrorKind = errorKind(p.lastError)
	}

	return status
}

func errorKind(err error) string {
	var kinded kindedError
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	return "unknown"
}

// IsInterfaceNil returns true if the value under the interface is nil
func (p *metricPipeline) IsInterfaceNil() bool {
	return p == nil
}
