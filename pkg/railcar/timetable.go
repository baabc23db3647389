package railcar

import (
	"encoding/json"
	"time"

	"github.com/depotwatch/depotwatch/pkg/util"
)

type StopTime struct {
	Seq           int    `json:"seq" groups:"basic"`
	StationID     string `json:"stationId" groups:"basic"`
	ArrivalTime   string `json:"arrivalTime" groups:"basic"`
	DepartureTime string `json:"departureTime" groups:"basic"`
}

type ServiceTimetable struct {
	ServiceNumber string `json:"no" groups:"basic"`
	TrainTypeName string `json:"trainTypeName" groups:"basic"`

	StartingStationName string `json:"startingStationName" groups:"basic"`
	EndingStationName   string `json:"endingStationName" groups:"basic"`

	StartingTime string `json:"startingTime" groups:"basic"`
	EndingTime   string `json:"endingTime" groups:"basic"`

	StopTimes []StopTime `json:"stopTimes" groups:"basic"`
}

func (t *ServiceTimetable) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *ServiceTimetable) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t *ServiceTimetable) FirstStop() *StopTime {
	if len(t.StopTimes) == 0 {
		return nil
	}

	return &t.StopTimes[0]
}

func (t *ServiceTimetable) LastStop() *StopTime {
	if len(t.StopTimes) == 0 {
		return nil
	}

	return &t.StopTimes[len(t.StopTimes)-1]
}

// StopAt returns the scheduled stop for the given station, or nil if the
// service does not call there.
func (t *ServiceTimetable) StopAt(stationID string) *StopTime {
	for index := range t.StopTimes {
		if t.StopTimes[index].StationID == stationID {
			return &t.StopTimes[index]
		}
	}

	return nil
}

// NextStopAfter returns the station id of the stop immediately following the
// given station in sequence order, or an empty string if the station is the
// last stop or unknown.
func (t *ServiceTimetable) NextStopAfter(stationID string) string {
	for index := range t.StopTimes {
		if t.StopTimes[index].StationID == stationID && index+1 < len(t.StopTimes) {
			return t.StopTimes[index+1].StationID
		}
	}

	return ""
}

// AnchorDailyTime converts a dateless "HH:MM" timetable value into a concrete
// time on the same calendar day as day.
//
// TODO: anchor end times that wrap past midnight to the next day
func AnchorDailyTime(value string, day time.Time) (time.Time, error) {
	parsed, err := time.ParseInLocation("15:04", value, day.Location())
	if err != nil {
		return time.Time{}, err
	}

	return util.AddTimeToDate(day, parsed), nil
}
