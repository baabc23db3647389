package railcar

type ServiceLiveData struct {
	// Local wall-clock "YYYY/MM/DD HH:MM" as reported upstream
	LiveUpdateTime string `json:"liveUpdateTime" groups:"basic"`

	// Keyed "{serviceNumber}_{stationId}". A value of 0 means confirmed on
	// time; a missing key means the service has not reached that station yet.
	TrainLiveMap map[string]int `json:"trainLiveMap" groups:"basic"`

	// Occupancy map used to derive the station a service currently sits at
	StationLiveMap map[string]interface{} `json:"stationLiveMap" groups:"basic"`
}
