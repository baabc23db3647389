package monitor

import (
	"fmt"

	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/resolver"
)

// AnnotateDelay appends the delay note the dashboard shows next to a
// scheduled time. On-time and unknown values pass through untouched.
func AnnotateDelay(value string, minutesLate int) string {
	if value == "" || minutesLate <= 0 {
		return value
	}

	return fmt.Sprintf("%s (誤點%d分)", value, minutesLate)
}

// TrainUpdate is the set of persisted fields the refresh cycle rewrites on
// every train each cycle.
type TrainUpdate struct {
	Status railcar.TrainStatus

	CurrentService string
	PrepareService string

	CurrentStation string
	NextStation    string

	ScheduledDeparture string
	EstimatedArrival   string
}

// BuildTrainUpdate maps a resolution onto the persisted record: picks the
// prepare service, looks up the scheduled times at the resolved station,
// annotates them with any reported delay and translates station ids to
// display names.
func BuildTrainUpdate(
	train *railcar.Train,
	resolution resolver.Resolution,
	timetable *railcar.ServiceTimetable,
	position resolver.LivePosition,
	stationNames map[string]string,
) TrainUpdate {
	update := TrainUpdate{
		Status:         resolution.Status,
		CurrentService: resolution.CurrentService,
	}

	prepareFrom := resolution.CurrentService
	if prepareFrom == "" {
		prepareFrom = train.CurrentService
	}
	update.PrepareService = railcar.NextServiceNumber(prepareFrom, train.Schedule)

	if timetable != nil && resolution.CurrentStation != "" {
		if stop := timetable.StopAt(resolution.CurrentStation); stop != nil {
			minutesLate := position.DelayMap[resolution.CurrentStation]

			update.EstimatedArrival = AnnotateDelay(stop.ArrivalTime, minutesLate)
			update.ScheduledDeparture = AnnotateDelay(stop.DepartureTime, minutesLate)
		}
	}

	update.CurrentStation = stationDisplayName(resolution.CurrentStation, stationNames)
	update.NextStation = stationDisplayName(resolution.NextStation, stationNames)

	return update
}

func stationDisplayName(stationID string, stationNames map[string]string) string {
	if name, ok := stationNames[stationID]; ok {
		return name
	}

	return stationID
}
