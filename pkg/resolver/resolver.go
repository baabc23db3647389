package resolver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/depotwatch/depotwatch/pkg/clock"
	"github.com/depotwatch/depotwatch/pkg/railcar"
)

type TimetableSource interface {
	Timetable(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, error)
}

type LiveDataSource interface {
	Live(ctx context.Context, serviceNumber string) (*railcar.ServiceLiveData, error)
}

type Resolver struct {
	Timetables TimetableSource
	Live       LiveDataSource
	Clock      clock.Clock
}

// Resolution is the outcome of one status derivation. Stations are ids; the
// write-back boundary translates them to display names.
type Resolution struct {
	Status         railcar.TrainStatus
	CurrentService string
	CurrentStation string
	NextStation    string
}

// A gap to the next service longer than this means the vehicle is still
// waiting for its next turn rather than being actively turned around.
const preparingWindow = 30 * time.Minute

type completedService struct {
	ServiceNumber string
	EndTime       time.Time
	LastStation   string
}

type upcomingService struct {
	ServiceNumber string
	StartTime     time.Time
	FirstStation  string
}

func NewResolver(timetables TimetableSource, live LiveDataSource) *Resolver {
	return &Resolver{
		Timetables: timetables,
		Live:       live,
		Clock:      clock.RealClock{},
	}
}

// Resolve walks the train's assigned service numbers in assignment order and
// derives its operating status. A live position match on any candidate wins
// immediately; otherwise the candidates' time windows against the current
// wall clock decide. Per-candidate upstream failures are logged and skipped,
// never fatal.
func (r *Resolver) Resolve(ctx context.Context, schedule []string) Resolution {
	validSchedule := railcar.FilterValidServiceNumbers(schedule)

	// A train with no real assignment defaults to awaiting departure
	if len(validSchedule) == 0 {
		return Resolution{Status: railcar.TrainStatusAwaitingDeparture}
	}

	now := r.Clock.Now()

	var lastCompleted *completedService
	var nextUpcoming *upcomingService

	for _, serviceNumber := range validSchedule {
		timetable, liveData, err := r.fetchService(ctx, serviceNumber)
		if err != nil {
			log.Error().Err(err).Str("service", serviceNumber).Msg("Failed to check candidate service")
			continue
		}

		if timetable.FirstStop() == nil {
			log.Error().Str("service", serviceNumber).Msg("Candidate service has no stops")
			continue
		}

		position := ParseLiveData(serviceNumber, liveData)

		// A live position always wins over time-based inference
		if position.CurrentStationID != "" {
			return Resolution{
				Status:         railcar.TrainStatusRunning,
				CurrentService: serviceNumber,
				CurrentStation: position.CurrentStationID,
				NextStation:    timetable.NextStopAfter(position.CurrentStationID),
			}
		}

		startTime, err := railcar.AnchorDailyTime(timetable.StartingTime, now)
		if err != nil {
			log.Error().Err(err).Str("service", serviceNumber).Msg("Unparseable starting time")
			continue
		}

		endTime, err := railcar.AnchorDailyTime(timetable.EndingTime, now)
		if err != nil {
			log.Error().Err(err).Str("service", serviceNumber).Msg("Unparseable ending time")
			continue
		}

		if now.After(endTime) {
			lastCompleted = &completedService{
				ServiceNumber: serviceNumber,
				EndTime:       endTime,
				LastStation:   timetable.LastStop().StationID,
			}
		} else if now.Before(startTime) && (nextUpcoming == nil || startTime.Before(nextUpcoming.StartTime)) {
			nextUpcoming = &upcomingService{
				ServiceNumber: serviceNumber,
				StartTime:     startTime,
				FirstStation:  timetable.FirstStop().StationID,
			}
		}
	}

	switch {
	case lastCompleted == nil && nextUpcoming == nil:
		return Resolution{Status: railcar.TrainStatusAwaitingDeparture}

	case lastCompleted != nil && nextUpcoming == nil:
		return Resolution{
			Status:         railcar.TrainStatusFinished,
			CurrentService: lastCompleted.ServiceNumber,
			CurrentStation: lastCompleted.LastStation,
		}

	case lastCompleted == nil:
		return Resolution{
			Status:         railcar.TrainStatusAwaitingDeparture,
			CurrentService: nextUpcoming.ServiceNumber,
			CurrentStation: nextUpcoming.FirstStation,
		}
	}

	// Between two services: a long gap means still waiting for the next
	// turn, a short one means the vehicle is being prepared
	if nextUpcoming.StartTime.Sub(now) > preparingWindow {
		return Resolution{
			Status:         railcar.TrainStatusAwaitingDeparture,
			CurrentService: nextUpcoming.ServiceNumber,
			CurrentStation: nextUpcoming.FirstStation,
		}
	}

	return Resolution{
		Status:         railcar.TrainStatusPreparing,
		CurrentService: lastCompleted.ServiceNumber,
		CurrentStation: lastCompleted.LastStation,
	}
}

func (r *Resolver) fetchService(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, *railcar.ServiceLiveData, error) {
	var timetable *railcar.ServiceTimetable
	var timetableErr error

	var liveData *railcar.ServiceLiveData
	var liveErr error

	var waitGroup conc.WaitGroup
	waitGroup.Go(func() {
		timetable, timetableErr = r.Timetables.Timetable(ctx, serviceNumber)
	})
	waitGroup.Go(func() {
		liveData, liveErr = r.Live.Live(ctx, serviceNumber)
	})
	waitGroup.Wait()

	if timetableErr != nil {
		return nil, nil, timetableErr
	}
	if liveErr != nil {
		return nil, nil, liveErr
	}

	return timetable, liveData, nil
}
