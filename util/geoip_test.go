package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitGeoIPWithoutDatabaseIsNoOp(t *testing.T) {
	t.Setenv("GEOIP_DB_PATH", "")
	assert.NoError(t, InitGeoIP(""))
}

func TestInitGeoIPMissingFile(t *testing.T) {
	assert.Error(t, InitGeoIP("/nonexistent/geoip.mmdb"))
}

func TestGetIPLocationWithoutDatabase(t *testing.T) {
	city, country := GetIPLocation("203.0.113.9")
	assert.Empty(t, city)
	assert.Empty(t, country)
}

func TestGetIPLocationSkipsPrivateRanges(t *testing.T) {
	for _, ip := range []string{"", "127.0.0.1", "::1", "10.0.0.5", "192.168.1.20"} {
		city, country := GetIPLocation(ip)
		assert.Empty(t, city, "ip %q", ip)
		assert.Empty(t, country, "ip %q", ip)
	}
}

func TestGetGeoIPCacheMetrics(t *testing.T) {
	hits, misses, size := GetGeoIPCacheMetrics()
	assert.GreaterOrEqual(t, hits, int64(0))
	assert.GreaterOrEqual(t, misses, int64(0))
	assert.GreaterOrEqual(t, size, 0)
}
