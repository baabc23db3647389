package railcar

import "time"

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeTrainStatusUpdated    EventType = "TrainStatusUpdated"
	EventTypeTrainStatusOverridden EventType = "TrainStatusOverridden"
)
