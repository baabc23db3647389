package monitor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"

	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/redis_client"
)

const stationDirectoryKey = "station_directory"

// StationDirectory resolves station ids to display names, caching the full
// directory in Redis between refresh cycles.
type StationDirectory struct {
	cache *cache.Cache[string]
}

func NewStationDirectory() *StationDirectory {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(30*time.Minute))

	return &StationDirectory{
		cache: cache.New[string](redisStore),
	}
}

func (d *StationDirectory) Directory(ctx context.Context) (map[string]string, error) {
	if d.cache != nil {
		if cached, err := d.cache.Get(ctx, stationDirectoryKey); err == nil && cached != "" {
			directory := map[string]string{}
			if err := json.Unmarshal([]byte(cached), &directory); err == nil {
				return directory, nil
			}
		}
	}

	directory, err := railcar.GetStationDirectory()
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if directoryBytes, err := json.Marshal(directory); err == nil {
			d.cache.Set(ctx, stationDirectoryKey, string(directoryBytes))
		}
	}

	return directory, nil
}
