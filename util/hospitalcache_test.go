package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediconnect/mediconnect-api/config"
	"github.com/mediconnect/mediconnect-api/model"
)

// Without a Redis client the directory cache degrades to a permanent miss;
// none of the helpers may panic or error.
func TestHospitalDirectoryCacheWithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)

	hospitals, ok := HospitalDirectoryCacheGet()
	assert.False(t, ok)
	assert.Nil(t, hospitals)

	HospitalDirectoryCacheSet([]model.Hospital{{Name: "City General"}})
	InvalidateHospitalDirectoryCache()

	_, ok = HospitalDirectoryCacheGet()
	assert.False(t, ok, "set without a client stores nothing")
}
