package testsCommon

import (
	"context"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
)

// SourceStub -
type SourceStub struct {
	FetchMetricsHandler func(ctx context.Context) (common.RawPayload, error)
}

// FetchMetrics -
func (stub *SourceStub) FetchMetrics(ctx context.Context) (common.RawPayload, error) {
	if stub.FetchMetricsHandler != nil {
		return stub.FetchMetricsHandler(ctx)
	}

	return common.RawPayload{}, nil
}

// IsInterfaceNil -
func (stub *SourceStub) IsInterfaceNil() bool {
	return stub == nil
}
