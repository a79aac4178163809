package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediconnect/mediconnect-api/config"
)

// APIResponse documents the wire shape of every handler response. Mutations
// additionally merge an "<entity>" key (and logins a "token" key) into the
// object; see the Data map on APISuccessParams.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type APIErrorParams struct {
	Msg   string
	Err   error
	Field string
}

type APISuccessParams struct {
	Msg  string
	Data map[string]interface{}
}

func successBody(params APISuccessParams) gin.H {
	body := gin.H{
		"success": true,
		"message": params.Msg,
	}
	for k, v := range params.Data {
		body[k] = v
	}
	return body
}

func errorBody(params APIErrorParams) gin.H {
	body := gin.H{
		"success": false,
		"message": params.Msg,
	}
	if params.Field != "" {
		body["field"] = params.Field
	}
	return body
}

// CallSuccessOK returns a 200 response with the given message and any extra
// top-level keys from Data.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, successBody(params))
}

// CallSuccessCreated returns a 201 response for successful record creation.
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, successBody(params))
}

// CallUserError returns a 400 validation failure, attributing the violated
// field when one is known.
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorBody(params))
}

// CallUserNotAuthorized returns a 401 for missing, invalid or stale credentials.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorBody(params))
}

// CallUserForbidden returns a 403 for authenticated but deactivated or
// disallowed principals.
func CallUserForbidden(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusForbidden, errorBody(params))
}

// CallPayloadTooLarge returns a 413 for uploads over the size cap.
func CallPayloadTooLarge(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusRequestEntityTooLarge, errorBody(params))
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorBody(params))
}

// CallServerError returns a 500. Error detail is exposed only outside
// production configuration.
func CallServerError(c *gin.Context, params APIErrorParams) {
	body := errorBody(params)
	if cfg := config.LoadConfig(); cfg != nil && cfg.AppEnv != "production" && params.Err != nil {
		body["error"] = params.Err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), " ")
}
