package endpoint_test

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mediconnect/mediconnect-api/util"
)

// TestMain sets up consistent test configuration for all tests in the
// endpoint_test package. This prevents test order dependency issues caused
// by the singleton config pattern.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("GINMODE", "release")

	util.SetJWTSecret("test-secret-123")
	gin.SetMode(gin.ReleaseMode)

	os.Exit(m.Run())
}
