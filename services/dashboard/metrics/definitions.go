package metrics

// Definition describes one tracked metric: where its value and its target live inside the raw payload
type Definition struct {
	Key          string
	DisplayLabel string
	RawColumn    string
	TargetColumn string
}

// The definition table is build-time configuration, not user-editable. Target columns follow the
// upstream "<column> Target" convention except where the sheet shortens them.
var definitions = []Definition{
	{
		Key:          "TOTAL_USERS",
		DisplayLabel: "Total Users",
		RawColumn:    "Total Registered Users",
		TargetColumn: "Total Registered Users Target",
	},
	{
		Key:          "NEW_SIGNUPS",
		DisplayLabel: "New Signups",
		RawColumn:    "New Signups",
		TargetColumn: "New Signups Target",
	},
	{
		Key:          "POWER_USERS",
		DisplayLabel: "Power Users",
		RawColumn:    "Power Users (21+ Messages)",
		TargetColumn: "Power Users Target",
	},
	{
		Key:          "MEDIUM_USERS",
		DisplayLabel: "Medium Users",
		RawColumn:    "Medium Users (5-20 Messages)",
		TargetColumn: "Medium Users Target",
	},
	{
		Key:          "THREAD_USERS",
		DisplayLabel: "Thread Users",
		RawColumn:    "Thread Users",
		TargetColumn: "Thread Users Target",
	},
}

// Definitions returns the static metric definition table
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)

	return out
}
