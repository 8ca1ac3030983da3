package api

import "github.com/gaugeboard/gauge-dashboard/services/dashboard/common"

// Pipeline defines the read surface of the refresh pipeline consumed by the display API. There is no
// write path: the display layer can only query.
type Pipeline interface {
	// GetMetric returns the last known snapshot for the period/metric pair, zero-valued when no data exists
	GetMetric(period string, metricKey string) common.Snapshot

	// HasPeriodData returns true when the last snapshot carries data for the provided period
	HasPeriodData(period string) bool

	// Status returns the staleness/error state of the refresh cycle
	Status() common.PipelineStatus

	IsInterfaceNil() bool
}
