package railcar

import "strings"

type trainTypePrefix struct {
	Prefix string
	Type   string
}

// Checked in order; longer prefixes must come before shorter ones that
// share a leading run.
var trainTypePrefixes = []trainTypePrefix{
	{Prefix: "EMU3", Type: "EMU3000"},
	{Prefix: "EMU9", Type: "EMU900"},
	{Prefix: "E10", Type: "E1000"},
	{Prefix: "E5", Type: "E500"},
}

// TrainTypeForID classifies a physical railcar unit by its id prefix.
// Returns an empty string for unrecognised units.
func TrainTypeForID(trainID string) string {
	for _, entry := range trainTypePrefixes {
		if strings.HasPrefix(trainID, entry.Prefix) {
			return entry.Type
		}
	}

	return ""
}
