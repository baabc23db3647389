package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotwatch/depotwatch/pkg/clock"
	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/resolver"
)

type fakeFleetStore struct {
	mu sync.Mutex

	trains         []*railcar.Train
	schedules      map[string][]string
	scheduleErrors map[string]error

	updates map[string]TrainUpdate
}

func newFakeFleetStore() *fakeFleetStore {
	return &fakeFleetStore{
		schedules:      map[string][]string{},
		scheduleErrors: map[string]error{},
		updates:        map[string]TrainUpdate{},
	}
}

func (s *fakeFleetStore) AllTrains(ctx context.Context) ([]*railcar.Train, error) {
	return s.trains, nil
}

func (s *fakeFleetStore) Schedule(ctx context.Context, trainID string) ([]string, error) {
	if err := s.scheduleErrors[trainID]; err != nil {
		return nil, err
	}

	return s.schedules[trainID], nil
}

func (s *fakeFleetStore) UpdateTrain(ctx context.Context, trainID string, update TrainUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates[trainID] = update

	return nil
}

type fakeStations struct {
	names map[string]string
}

func (s *fakeStations) Directory(ctx context.Context) (map[string]string, error) {
	return s.names, nil
}

type fakeTimetables struct {
	mu         sync.Mutex
	timetables map[string]*railcar.ServiceTimetable
	calls      []string
}

func (f *fakeTimetables) Timetable(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, error) {
	f.mu.Lock()
	f.calls = append(f.calls, serviceNumber)
	f.mu.Unlock()

	timetable, ok := f.timetables[serviceNumber]
	if !ok {
		return nil, errors.New("unknown service")
	}

	return timetable, nil
}

type fakeLive struct{}

func (f *fakeLive) Live(ctx context.Context, serviceNumber string) (*railcar.ServiceLiveData, error) {
	return &railcar.ServiceLiveData{
		TrainLiveMap:   map[string]int{},
		StationLiveMap: map[string]interface{}{},
	}, nil
}

func testRefresher(store *fakeFleetStore, timetables *fakeTimetables, now time.Time) *Refresher {
	live := &fakeLive{}

	return &Refresher{
		Resolver: &resolver.Resolver{
			Timetables: timetables,
			Live:       live,
			Clock:      clock.NewMockClock(now),
		},
		Timetables: timetables,
		Live:       live,
		Stations:   &fakeStations{names: map[string]string{"QID": "七堵", "TPE": "臺北"}},
		Store:      store,
	}
}

func TestRefreshAllWritesResolvedStatus(t *testing.T) {
	store := newFakeFleetStore()
	store.trains = []*railcar.Train{
		{PrimaryIdentifier: "EMU901", Status: railcar.TrainStatusAwaitingDeparture},
	}
	store.schedules["EMU901"] = []string{"501", "502"}

	timetables := &fakeTimetables{
		timetables: map[string]*railcar.ServiceTimetable{
			"501": {
				ServiceNumber: "501",
				StartingTime:  "08:00",
				EndingTime:    "10:00",
				StopTimes: []railcar.StopTime{
					{Seq: 1, StationID: "QID", ArrivalTime: "08:00", DepartureTime: "08:00"},
					{Seq: 2, StationID: "TPE", ArrivalTime: "10:00", DepartureTime: "10:00"},
				},
			},
			"502": {
				ServiceNumber: "502",
				StartingTime:  "10:20",
				EndingTime:    "12:00",
				StopTimes: []railcar.StopTime{
					{Seq: 1, StationID: "TPE", ArrivalTime: "10:20", DepartureTime: "10:20"},
					{Seq: 2, StationID: "QID", ArrivalTime: "12:00", DepartureTime: "12:00"},
				},
			},
		},
	}

	refresher := testRefresher(store, timetables, time.Date(2024, 11, 28, 10, 10, 0, 0, time.UTC))

	require.NoError(t, refresher.RefreshAll(context.Background()))

	update, written := store.updates["EMU901"]
	require.True(t, written)

	assert.Equal(t, railcar.TrainStatusPreparing, update.Status)
	assert.Equal(t, "501", update.CurrentService)
	assert.Equal(t, "502", update.PrepareService)
	assert.Equal(t, "臺北", update.CurrentStation)
}

func TestRefreshAllSkipsManualStatuses(t *testing.T) {
	store := newFakeFleetStore()
	store.trains = []*railcar.Train{
		{PrimaryIdentifier: "EMU901", Status: railcar.TrainStatusUnderMaintenance},
		{PrimaryIdentifier: "E1002", Status: railcar.TrainStatusStandby},
	}
	store.schedules["EMU901"] = []string{"501"}

	timetables := &fakeTimetables{timetables: map[string]*railcar.ServiceTimetable{}}

	refresher := testRefresher(store, timetables, time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC))

	require.NoError(t, refresher.RefreshAll(context.Background()))

	// A manually assigned status is never resolved against or overwritten
	assert.Empty(t, store.updates)
	assert.Empty(t, timetables.calls)
}

func TestRefreshTrainScheduleFailurePreservesStatus(t *testing.T) {
	store := newFakeFleetStore()
	train := &railcar.Train{
		PrimaryIdentifier: "EMU901",
		Status:            railcar.TrainStatusRunning,
	}
	store.trains = []*railcar.Train{train}
	store.scheduleErrors["EMU901"] = errors.New("connection reset")

	timetables := &fakeTimetables{timetables: map[string]*railcar.ServiceTimetable{}}

	refresher := testRefresher(store, timetables, time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC))

	err := refresher.RefreshTrain(context.Background(), train)
	require.Error(t, err)

	// An unloadable schedule must not degrade the persisted status
	assert.Empty(t, store.updates)

	// And the cycle as a whole carries on past the failing train
	require.NoError(t, refresher.RefreshAll(context.Background()))
	assert.Empty(t, store.updates)
}
