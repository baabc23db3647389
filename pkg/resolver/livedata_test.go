package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/depotwatch/depotwatch/pkg/railcar"
)

func TestParseLiveData(t *testing.T) {
	liveData := &railcar.ServiceLiveData{
		LiveUpdateTime: "10:31",
		TrainLiveMap: map[string]int{
			"501_QID": 0,
			"501_NAN": 4,
			"777_NAN": 9,
		},
		StationLiveMap: map[string]interface{}{
			"501_NAN": 1,
			"777_QID": 1,
		},
	}

	position := ParseLiveData("501", liveData)

	assert.Equal(t, "NAN", position.CurrentStationID)

	// A station present with delay 0 has been reached on time; an absent
	// station has not been reached at all
	delay, reached := position.DelayMap["QID"]
	assert.True(t, reached)
	assert.Equal(t, 0, delay)

	assert.Equal(t, 4, position.DelayMap["NAN"])

	_, reached = position.DelayMap["TPE"]
	assert.False(t, reached)

	// Other services' entries never leak in
	assert.NotContains(t, position.DelayMap, "777_NAN")
	assert.Len(t, position.DelayMap, 2)
}

func TestParseLiveDataNoSignal(t *testing.T) {
	position := ParseLiveData("501", &railcar.ServiceLiveData{
		TrainLiveMap:   map[string]int{},
		StationLiveMap: map[string]interface{}{},
	})

	assert.Empty(t, position.CurrentStationID)
	assert.Empty(t, position.DelayMap)
}

func TestParseLiveDataPrefixIsExact(t *testing.T) {
	// Service "50" must not match "501_..." keys
	liveData := &railcar.ServiceLiveData{
		TrainLiveMap:   map[string]int{"501_QID": 2},
		StationLiveMap: map[string]interface{}{"501_QID": 1},
	}

	position := ParseLiveData("50", liveData)

	assert.Empty(t, position.CurrentStationID)
	assert.Empty(t, position.DelayMap)
}
