package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/redis_client"
	"github.com/depotwatch/depotwatch/pkg/resolver"
)

const maxConcurrentTrains = 10

// StationSource resolves station ids to display names.
type StationSource interface {
	Directory(ctx context.Context) (map[string]string, error)
}

type Refresher struct {
	Resolver   *resolver.Resolver
	Timetables resolver.TimetableSource
	Live       resolver.LiveDataSource
	Stations   StationSource
	Store      FleetStore

	eventsQueue rmq.Queue
}

func NewRefresher(statusResolver *resolver.Resolver, stations StationSource, store FleetStore) (*Refresher, error) {
	eventsQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
	if err != nil {
		return nil, err
	}

	return &Refresher{
		Resolver:   statusResolver,
		Timetables: statusResolver.Timetables,
		Live:       statusResolver.Live,
		Stations:   stations,
		Store:      store,

		eventsQueue: eventsQueue,
	}, nil
}

// Run refreshes the whole fleet on a fixed cadence, subtracting each cycle's
// execution time from the wait.
func (r *Refresher) Run(refreshRate time.Duration) {
	for {
		startTime := time.Now()

		if err := r.RefreshAll(context.Background()); err != nil {
			log.Error().Err(err).Msg("Fleet refresh cycle failed")
		}

		executionDuration := time.Since(startTime)
		waitTime := refreshRate - executionDuration

		if waitTime.Seconds() > 0 {
			time.Sleep(waitTime)
		}
	}
}

// RefreshAll resolves every train in the fleet concurrently, one task per
// train. Trains whose status was assigned manually have no schedule worth
// resolving against and are skipped.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	trains, err := r.Store.AllTrains(ctx)
	if err != nil {
		return err
	}

	var updated atomic.Int64
	skipped := 0

	p := pool.New().WithMaxGoroutines(maxConcurrentTrains)

	for _, train := range trains {
		if train.Status.IsManual() {
			skipped++
			log.Debug().Str("train", train.PrimaryIdentifier).Str("status", string(train.Status)).Msg("Skipping manually assigned status")
			continue
		}

		train := train
		p.Go(func() {
			if err := r.RefreshTrain(ctx, train); err != nil {
				log.Error().Err(err).Str("train", train.PrimaryIdentifier).Msg("Failed to refresh train")
				return
			}

			updated.Add(1)
		})
	}

	p.Wait()

	log.Info().Int64("updated", updated.Load()).Int("skipped", skipped).Int("total", len(trains)).Msg("Fleet refresh cycle complete")

	return nil
}

// RefreshTrain resolves one train's status and writes the result back.
// A failed schedule load aborts before resolution so the last persisted
// status survives; upstream failures inside resolution degrade to weaker
// statuses instead.
func (r *Refresher) RefreshTrain(ctx context.Context, train *railcar.Train) error {
	schedule, err := r.Store.Schedule(ctx, train.PrimaryIdentifier)
	if err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}
	train.Schedule = schedule

	resolution := r.Resolver.Resolve(ctx, train.Schedule)

	var timetable *railcar.ServiceTimetable
	position := resolver.LivePosition{DelayMap: map[string]int{}}

	if resolution.CurrentService != "" && resolution.CurrentStation != "" {
		var err error

		timetable, err = r.Timetables.Timetable(ctx, resolution.CurrentService)
		if err != nil {
			log.Error().Err(err).Str("service", resolution.CurrentService).Msg("Failed to fetch timetable for resolved service")
		}

		liveData, err := r.Live.Live(ctx, resolution.CurrentService)
		if err == nil {
			position = resolver.ParseLiveData(resolution.CurrentService, liveData)
		}
	}

	stationNames, err := r.Stations.Directory(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load station directory")
		stationNames = map[string]string{}
	}

	update := BuildTrainUpdate(train, resolution, timetable, position, stationNames)

	if err := r.Store.UpdateTrain(ctx, train.PrimaryIdentifier, update); err != nil {
		return err
	}

	if train.Status != update.Status {
		r.archiveTransition(train, update)
	}

	r.publishUpdate(train, update)

	return nil
}

func (r *Refresher) archiveTransition(train *railcar.Train, update TrainUpdate) {
	if database.GlobalGorm == nil {
		return
	}

	transition := railcar.StatusTransition{
		TrainID:        train.PrimaryIdentifier,
		FromStatus:     train.Status,
		ToStatus:       update.Status,
		CurrentService: update.CurrentService,
		RecordedAt:     time.Now(),
	}

	if err := database.GlobalGorm.Create(&transition).Error; err != nil {
		log.Error().Err(err).Str("train", train.PrimaryIdentifier).Msg("Failed to archive status transition")
	}
}

func (r *Refresher) publishUpdate(train *railcar.Train, update TrainUpdate) {
	if r.eventsQueue == nil {
		return
	}

	event := railcar.Event{
		Type:      railcar.EventTypeTrainStatusUpdated,
		Timestamp: time.Now(),
		Body: map[string]interface{}{
			"TrainID":        train.PrimaryIdentifier,
			"PreviousStatus": train.Status,
			"Status":         update.Status,
			"CurrentService": update.CurrentService,
			"CurrentStation": update.CurrentStation,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := r.eventsQueue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Msg("Failed to publish train status event")
	}
}
