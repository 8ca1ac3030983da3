package metrics

// The reporting windows form a closed set, fixed by configuration. Periods found in the upstream
// payload outside this set are ignored, never added.
var periods = []string{
	"All Time",
	"Last 30 Days",
	"Last 7 Days",
	"Last 3 Days",
	"Last 24 Hours",
}

// Periods returns the known reporting windows, in display order
func Periods() []string {
	out := make([]string, len(periods))
	copy(out, periods)

	return out
}

// IsKnownPeriod returns true if the provided period is part of the closed reporting-window set
func IsKnownPeriod(period string) bool {
	for _, p := range periods {
		if p == period {
			return true
		}
	}

	return false
}
