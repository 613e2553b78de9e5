package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	watchadapters "stockhawk/internal/feature/watchlist/adapters"
	watchusecase "stockhawk/internal/feature/watchlist/usecase"
)

// NewPreferenceRepository creates a PreferenceRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL store.
func NewPreferenceRepository(rdb *redis.Client, db *gorm.DB) watchusecase.PreferenceRepository {
	if rdb != nil {
		return watchadapters.NewRedisPreferenceRepository(rdb, "prefs")
	}
	return watchadapters.NewPreferenceRepository(db)
}
