package resolver

import (
	"strings"

	"github.com/depotwatch/depotwatch/pkg/railcar"
)

// LivePosition is the per-service view extracted from a raw live feed.
type LivePosition struct {
	// Empty when the service is not currently tracked. This is the normal
	// "no live signal" case, not a failure.
	CurrentStationID string

	// Station id to minutes late. A station present with value 0 has been
	// reached and is on time; a station absent from the map has not been
	// reached yet.
	DelayMap map[string]int
}

// ParseLiveData extracts the current station and delay table for one service
// number from a live feed payload. Feed keys are "{serviceNumber}_{stationId}"
// composites.
func ParseLiveData(serviceNumber string, liveData *railcar.ServiceLiveData) LivePosition {
	position := LivePosition{
		DelayMap: map[string]int{},
	}

	keyPrefix := serviceNumber + "_"

	for key := range liveData.StationLiveMap {
		if strings.HasPrefix(key, keyPrefix) {
			position.CurrentStationID = strings.TrimPrefix(key, keyPrefix)
			break
		}
	}

	for key, minutesLate := range liveData.TrainLiveMap {
		if strings.HasPrefix(key, keyPrefix) {
			position.DelayMap[strings.TrimPrefix(key, keyPrefix)] = minutesLate
		}
	}

	return position
}
