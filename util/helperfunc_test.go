package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordResponse(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.ReleaseMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestCallSuccessMergesDataIntoTopLevel(t *testing.T) {
	rr, body := recordResponse(t, func(c *gin.Context) {
		CallSuccessOK(c, APISuccessParams{
			Msg: "Login successful",
			Data: map[string]interface{}{
				"token":    "abc",
				"hospital": map[string]interface{}{"id": 1},
			},
		})
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "abc", body["token"], "data keys sit at the top level, not nested")
	assert.Contains(t, body, "hospital")
}

func TestCallSuccessCreatedStatus(t *testing.T) {
	rr, body := recordResponse(t, func(c *gin.Context) {
		CallSuccessCreated(c, APISuccessParams{Msg: "Created"})
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, true, body["success"])
}

func TestCallUserErrorFieldAttribution(t *testing.T) {
	rr, body := recordResponse(t, func(c *gin.Context) {
		CallUserError(c, APIErrorParams{Msg: "email is already registered", Field: "email"})
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "email", body["field"])

	_, body = recordResponse(t, func(c *gin.Context) {
		CallUserError(c, APIErrorParams{Msg: "Invalid credentials"})
	})
	assert.NotContains(t, body, "field", "field key omitted when unattributed")
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *gin.Context)
		want int
	}{
		{"unauthorized", func(c *gin.Context) { CallUserNotAuthorized(c, APIErrorParams{Msg: "Please authenticate"}) }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { CallUserForbidden(c, APIErrorParams{Msg: "Deactivated"}) }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { CallErrorNotFound(c, APIErrorParams{Msg: "Patient not found"}) }, http.StatusNotFound},
		{"payload too large", func(c *gin.Context) { CallPayloadTooLarge(c, APIErrorParams{Msg: "too big"}) }, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := recordResponse(t, tt.fn)
			assert.Equal(t, tt.want, rr.Code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestCallServerErrorExposesDetailOutsideProduction(t *testing.T) {
	rr, body := recordResponse(t, func(c *gin.Context) {
		CallServerError(c, APIErrorParams{Msg: "Database error", Err: errors.New("connection refused")})
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Database error", body["message"])
	assert.Equal(t, "connection refused", body["error"], "non-production config surfaces the cause")
}
