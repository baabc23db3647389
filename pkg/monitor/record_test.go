package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/resolver"
)

func TestAnnotateDelay(t *testing.T) {
	assert.Equal(t, "10:45 (誤點3分)", AnnotateDelay("10:45", 3))
	assert.Equal(t, "10:45", AnnotateDelay("10:45", 0))
	assert.Equal(t, "10:45", AnnotateDelay("10:45", -1))
	assert.Equal(t, "", AnnotateDelay("", 5))
}

func TestBuildTrainUpdate(t *testing.T) {
	train := &railcar.Train{
		PrimaryIdentifier: "EMU901",
		Schedule:          []string{"501", "502", "507"},
	}

	timetable := &railcar.ServiceTimetable{
		ServiceNumber: "502",
		StopTimes: []railcar.StopTime{
			{Seq: 1, StationID: "QID", ArrivalTime: "10:20", DepartureTime: "10:20"},
			{Seq: 2, StationID: "NAN", ArrivalTime: "11:05", DepartureTime: "11:07"},
			{Seq: 3, StationID: "TPE", ArrivalTime: "12:00", DepartureTime: "12:00"},
		},
	}

	resolution := resolver.Resolution{
		Status:         railcar.TrainStatusRunning,
		CurrentService: "502",
		CurrentStation: "NAN",
		NextStation:    "TPE",
	}
	position := resolver.LivePosition{
		CurrentStationID: "NAN",
		DelayMap:         map[string]int{"QID": 0, "NAN": 4},
	}
	stationNames := map[string]string{
		"QID": "七堵",
		"NAN": "南港",
		"TPE": "臺北",
	}

	update := BuildTrainUpdate(train, resolution, timetable, position, stationNames)

	assert.Equal(t, railcar.TrainStatusRunning, update.Status)
	assert.Equal(t, "502", update.CurrentService)
	assert.Equal(t, "507", update.PrepareService)
	assert.Equal(t, "南港", update.CurrentStation)
	assert.Equal(t, "臺北", update.NextStation)
	assert.Equal(t, "11:05 (誤點4分)", update.EstimatedArrival)
	assert.Equal(t, "11:07 (誤點4分)", update.ScheduledDeparture)
}

func TestBuildTrainUpdateOnTime(t *testing.T) {
	train := &railcar.Train{Schedule: []string{"501", "502"}}

	timetable := &railcar.ServiceTimetable{
		ServiceNumber: "501",
		StopTimes: []railcar.StopTime{
			{Seq: 1, StationID: "QID", ArrivalTime: "08:00", DepartureTime: "08:00"},
		},
	}

	resolution := resolver.Resolution{
		Status:         railcar.TrainStatusRunning,
		CurrentService: "501",
		CurrentStation: "QID",
	}
	position := resolver.LivePosition{
		CurrentStationID: "QID",
		DelayMap:         map[string]int{"QID": 0},
	}

	update := BuildTrainUpdate(train, resolution, timetable, position, nil)

	assert.Equal(t, "08:00", update.EstimatedArrival)
	assert.Equal(t, "08:00", update.ScheduledDeparture)

	// No directory entry falls back to the raw station id
	assert.Equal(t, "QID", update.CurrentStation)
	assert.Equal(t, "", update.NextStation)
}

func TestBuildTrainUpdatePrepareServiceFallback(t *testing.T) {
	// When the resolution carries no service the persisted one anchors the
	// prepare lookup
	train := &railcar.Train{
		CurrentService: "501",
		Schedule:       []string{"501", "502"},
	}

	resolution := resolver.Resolution{Status: railcar.TrainStatusAwaitingDeparture}

	update := BuildTrainUpdate(train, resolution, nil, resolver.LivePosition{}, nil)

	assert.Equal(t, "502", update.PrepareService)
	assert.Empty(t, update.EstimatedArrival)
	assert.Empty(t, update.ScheduledDeparture)
}
