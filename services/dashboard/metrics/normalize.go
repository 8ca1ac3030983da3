package metrics

import (
	"math"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
)

// defaultTargetHeadroom is the factor applied over the current value when the sheet supplies no
// target: 20% above where the metric stands today, rounded up
const defaultTargetHeadroom = 1.2

// Normalize flattens the raw period/column table into per-period snapshots keyed by the stable metric
// keys of the definition table. Periods absent from the payload stay absent in the output. A column
// absent from a present period counts as zero usage, not as an error.
func Normalize(raw common.RawPayload) map[string]map[string]common.Snapshot {
	out := make(map[string]map[string]common.Snapshot)
	for _, period := range periods {
		columns, found := raw.Periods[period]
		if !found {
			continue
		}

		entry := make(map[string]common.Snapshot, len(definitions))
		for _, def := range definitions {
			value := columns[def.RawColumn]
			entry[def.Key] = common.Snapshot{
				Value:  value,
				Target: resolveTarget(raw.Targets, def.TargetColumn, value),
			}
		}

		out[period] = entry
	}

	return out
}

// resolveTarget applies the target fallback rule: a supplied target is used verbatim, zero and
// negative values included; otherwise the default is computed fresh from the period's own value
func resolveTarget(targets map[string]float64, targetColumn string, value float64) float64 {
	target, found := targets[targetColumn]
	if found {
		return target
	}

	return math.Ceil(value * defaultTargetHeadroom)
}
