package testsCommon

import "github.com/gaugeboard/gauge-dashboard/services/dashboard/common"

// PipelineStub -
type PipelineStub struct {
	GetMetricHandler     func(period string, metricKey string) common.Snapshot
	HasPeriodDataHandler func(period string) bool
	StatusHandler        func() common.PipelineStatus
}

// GetMetric -
func (stub *PipelineStub) GetMetric(period string, metricKey string) common.Snapshot {
	if stub.GetMetricHandler != nil {
		return stub.GetMetricHandler(period, metricKey)
	}

	return common.Snapshot{}
}

// HasPeriodData -
func (stub *PipelineStub) HasPeriodData(period string) bool {
	if stub.HasPeriodDataHandler != nil {
		return stub.HasPeriodDataHandler(period)
	}

	return false
}

// Status -
func (stub *PipelineStub) Status() common.PipelineStatus {
	if stub.StatusHandler != nil {
		return stub.StatusHandler()
	}

	return common.PipelineStatus{}
}

// IsInterfaceNil -
func (stub *PipelineStub) IsInterfaceNil() bool {
	return stub == nil
}
