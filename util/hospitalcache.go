package util

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mediconnect/mediconnect-api/config"
	"github.com/mediconnect/mediconnect-api/model"
)

// hospitalDirectoryKey caches the public hospital directory listing.
// All helpers tolerate a nil Redis client; the cache then simply misses.
const hospitalDirectoryKey = "hospital_directory"

const hospitalDirectoryTTL = 5 * time.Minute

// HospitalDirectoryCacheGet returns the cached hospital directory, or ok=false
// on a miss or when Redis is unavailable.
func HospitalDirectoryCacheGet() ([]model.Hospital, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil, false
	}
	ctx := context.Background()
	raw, err := rdb.Get(ctx, hospitalDirectoryKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			LogSecurityEvent(SecurityEvent{
				EventType: EventSuspiciousActivity,
				Message:   "Hospital directory cache read failed: " + err.Error(),
			})
		}
		return nil, false
	}

	var hospitals []model.Hospital
	if err := json.Unmarshal(raw, &hospitals); err != nil {
		return nil, false
	}
	return hospitals, true
}

// HospitalDirectoryCacheSet stores the hospital directory listing (best-effort).
func HospitalDirectoryCacheSet(hospitals []model.Hospital) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(hospitals)
	if err != nil {
		return
	}
	_ = rdb.Set(context.Background(), hospitalDirectoryKey, raw, hospitalDirectoryTTL).Err()
}

// InvalidateHospitalDirectoryCache drops the cached listing after a hospital
// is registered or updates its profile.
func InvalidateHospitalDirectoryCache() {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return
	}
	_ = rdb.Del(context.Background(), hospitalDirectoryKey).Err()
}
