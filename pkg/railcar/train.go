package railcar

import (
	"context"
	"time"

	"github.com/depotwatch/depotwatch/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Train struct {
	PrimaryIdentifier string `groups:"basic"`
	GroupID           string `groups:"basic"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`

	Status TrainStatus `groups:"basic"`

	CurrentService string `groups:"basic"`
	PrepareService string `groups:"basic"`

	CurrentStation string `groups:"basic"`
	NextStation    string `groups:"basic"`

	ScheduledDeparture string `groups:"basic"`
	EstimatedArrival   string `groups:"basic"`

	Driver string `groups:"basic"`

	// Derived from the unit id prefix, never stored
	TrainType string `groups:"basic" bson:"-"`

	Schedule []string `groups:"detailed" bson:"-"`
}

// UpdateDerivedFields fills the response-only fields computed from the
// stored record.
func (t *Train) UpdateDerivedFields() {
	t.TrainType = TrainTypeForID(t.PrimaryIdentifier)
}

type TrainStatus string

const (
	TrainStatusRunning           TrainStatus = "運行中"
	TrainStatusPreparing         TrainStatus = "準備中"
	TrainStatusAwaitingDeparture TrainStatus = "等待出車"
	TrainStatusFinished          TrainStatus = "已出車完畢"

	// Manually assigned by operations staff, never entered by the resolver
	TrainStatusStandby           TrainStatus = "預備"
	TrainStatusUnderMaintenance  TrainStatus = "維修中"
	TrainStatusAwaitingRepair    TrainStatus = "在段待修"
	TrainStatusUnscheduledRepair TrainStatus = "臨修(C2)"
	TrainStatusWorkshopOverhaul  TrainStatus = "進廠檢修(3B)"
	TrainStatusDepotMaintenance  TrainStatus = "在段保養(2A)"
)

// IsManual reports whether this status is set out-of-band by operations
// staff. Trains in a manual status are excluded from automatic resolution.
func (s TrainStatus) IsManual() bool {
	switch s {
	case TrainStatusStandby, TrainStatusUnderMaintenance, TrainStatusAwaitingRepair,
		TrainStatusUnscheduledRepair, TrainStatusWorkshopOverhaul, TrainStatusDepotMaintenance:
		return true
	}

	return false
}

// GetSchedule loads the train's assigned daily service numbers from the
// train_schedules collection, preserving assignment order. Callers must not
// treat a returned error as an empty schedule.
func (t *Train) GetSchedule() error {
	trainSchedulesCollection := database.GetCollection("train_schedules")

	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
	cursor, err := trainSchedulesCollection.Find(context.Background(), bson.M{"trainid": t.PrimaryIdentifier}, opts)
	if err != nil {
		return err
	}

	t.Schedule = nil

	for cursor.Next(context.Background()) {
		var assignment *ScheduleAssignment
		if err := cursor.Decode(&assignment); err != nil {
			continue
		}

		t.Schedule = append(t.Schedule, assignment.ServiceNumber)
	}

	return cursor.Err()
}

type ScheduleAssignment struct {
	TrainID       string `groups:"internal"`
	ServiceNumber string `groups:"basic"`
	Sequence      int    `groups:"basic"`
}
