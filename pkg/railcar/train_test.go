package railcar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainStatusIsManual(t *testing.T) {
	manual := []TrainStatus{
		TrainStatusStandby,
		TrainStatusUnderMaintenance,
		TrainStatusAwaitingRepair,
		TrainStatusUnscheduledRepair,
		TrainStatusWorkshopOverhaul,
		TrainStatusDepotMaintenance,
	}
	for _, status := range manual {
		assert.True(t, status.IsManual(), string(status))
	}

	automatic := []TrainStatus{
		TrainStatusRunning,
		TrainStatusPreparing,
		TrainStatusAwaitingDeparture,
		TrainStatusFinished,
	}
	for _, status := range automatic {
		assert.False(t, status.IsManual(), string(status))
	}
}

func TestTrainUpdateDerivedFields(t *testing.T) {
	train := &Train{PrimaryIdentifier: "EMU901"}
	train.UpdateDerivedFields()
	assert.Equal(t, "EMU900", train.TrainType)

	unknown := &Train{PrimaryIdentifier: "DR2700"}
	unknown.UpdateDerivedFields()
	assert.Equal(t, "", unknown.TrainType)
}
