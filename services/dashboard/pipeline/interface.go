package pipeline

import (
	"context"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
)

// Source defines the interface for fetching the full raw metrics payload from upstream
type Source interface {
	// FetchMetrics performs a single fetch of the complete payload, without retrying or caching.
	// Failures surface as TransportError, ResponseError or ParseError.
	FetchMetrics(ctx context.Context) (common.RawPayload, error)

	IsInterfaceNil() bool
}
