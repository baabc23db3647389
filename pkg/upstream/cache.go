package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/jinzhu/copier"

	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/redis_client"
)

// TimetableCache lets the owner of a Client bound repeat upstream timetable
// lookups. Implementations own their expiry policy.
type TimetableCache interface {
	Get(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, bool)
	Set(ctx context.Context, serviceNumber string, timetable *railcar.ServiceTimetable)
}

const timetableCacheTTL = 5 * time.Minute

// RedisTimetableCache keeps service timetables in Redis for a short window so
// that services referenced by multiple trains in one refresh cycle only hit
// the provider once.
type RedisTimetableCache struct {
	cache *cache.Cache[*railcar.ServiceTimetable]
}

func NewRedisTimetableCache() *RedisTimetableCache {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(timetableCacheTTL))

	return &RedisTimetableCache{
		cache: cache.New[*railcar.ServiceTimetable](redisStore),
	}
}

func (c *RedisTimetableCache) Get(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, bool) {
	cached, err := c.cache.Get(ctx, cacheKey(serviceNumber))
	if err != nil || cached == nil {
		return nil, false
	}

	// Hand out a copy so callers can't mutate the cached entry
	var timetable railcar.ServiceTimetable
	if err := copier.Copy(&timetable, cached); err != nil {
		return nil, false
	}

	return &timetable, true
}

func (c *RedisTimetableCache) Set(ctx context.Context, serviceNumber string, timetable *railcar.ServiceTimetable) {
	c.cache.Set(ctx, cacheKey(serviceNumber), timetable)
}

func cacheKey(serviceNumber string) string {
	return fmt.Sprintf("service_timetable:%s", serviceNumber)
}
