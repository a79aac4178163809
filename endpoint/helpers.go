package endpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/middleware"
	"github.com/mediconnect/mediconnect-api/upload"
	"github.com/mediconnect/mediconnect-api/util"
)

// uploadStore holds the photo store selected at startup. Handlers tolerate a
// nil store; photo fields are then simply never attached.
var uploadStore upload.Store

// SetUploadStore installs the photo store used by create/update handlers.
// Call once from main after config is loaded.
func SetUploadStore(store upload.Store) {
	uploadStore = store
}

// bindOrRespond binds JSON or form payloads into dst, answering 400 on failure.
func bindOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBind(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// requiredField pairs a request field name with its submitted value so
// presence checks report the first missing field in declaration order.
type requiredField struct {
	Name  string
	Value string
}

// firstMissingField returns the name of the first blank required field.
func firstMissingField(fields []requiredField) string {
	for _, f := range fields {
		if f.Value == "" {
			return f.Name
		}
	}
	return ""
}

func respondMissingField(c *gin.Context, field string) {
	util.CallUserError(c, util.APIErrorParams{
		Msg:   fmt.Sprintf("%s is required", field),
		Field: field,
	})
}

// savePhotoOrRespond stores an uploaded "photo" form file if one accompanied
// the request. It returns the stored reference ("" when no file was sent)
// and false when the request has already been answered with a file-policy
// or storage error.
func savePhotoOrRespond(c *gin.Context) (string, bool) {
	if uploadStore == nil {
		return "", true
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		// No file attached (or not a multipart request); the photo is optional.
		return "", true
	}

	ref, err := uploadStore.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			util.CallPayloadTooLarge(c, util.APIErrorParams{Msg: err.Error(), Field: "photo"})
		case errors.Is(err, upload.ErrFileType):
			util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Field: "photo"})
		default:
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to store photo", Err: err})
		}
		return "", false
	}
	return ref, true
}

// parseWireDate parses a date from its wire representation, accepting the
// plain date form first and full RFC3339 as a fallback.
func parseWireDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
