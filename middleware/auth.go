package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/util"
)

const (
	principalKindKey = "principal_kind"
	hospitalKey      = "auth_hospital"
	doctorKey        = "auth_doctor"
)

// RequireAuth resolves the request's bearer token into a principal of one of
// the accepted kinds and attaches the full record to the context. One
// table-driven gate covers hospital-only, doctor-only and dual-role routes.
//
// Rejections: missing/invalid/expired token, a kind outside the accepted set,
// or a principal that no longer exists -> 401; a deactivated doctor -> 403.
// The inactive check runs on every request, not only at login, so a hospital
// can cut off a doctor mid-session.
func RequireAuth(kinds ...util.PrincipalKind) gin.HandlerFunc {
	accepted := make(map[util.PrincipalKind]bool, len(kinds))
	for _, k := range kinds {
		accepted[k] = true
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectUnauthenticated(c, "no token provided")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		kind, id, err := util.ParseToken(tokenString)
		if err != nil {
			rejectUnauthenticated(c, "invalid or expired token")
			return
		}
		if !accepted[kind] {
			rejectUnauthenticated(c, fmt.Sprintf("%s token not accepted here", kind))
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		switch kind {
		case util.PrincipalHospital:
			var hospital model.Hospital
			if err := db.First(&hospital, id).Error; err != nil {
				rejectStalePrincipal(c, db, "hospital", err)
				return
			}
			c.Set(principalKindKey, util.PrincipalHospital)
			c.Set(hospitalKey, hospital)

		case util.PrincipalDoctor:
			var doctor model.Doctor
			if err := db.First(&doctor, id).Error; err != nil {
				rejectStalePrincipal(c, db, "doctor", err)
				return
			}
			if doctor.Status == model.StatusInactive {
				util.LogDeactivatedAccess(fmt.Sprintf("doctor:%d", doctor.ID), c.ClientIP(), c.Request.URL.Path)
				util.CallUserForbidden(c, util.APIErrorParams{
					Msg: "Your account has been deactivated. Please contact your hospital administrator.",
				})
				c.Abort()
				return
			}
			c.Set(principalKindKey, util.PrincipalDoctor)
			c.Set(doctorKey, doctor)
		}

		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context, reason string) {
	util.LogUnauthorizedAccess("", c.ClientIP(), c.Request.URL.Path, reason)
	util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
	c.Abort()
}

func rejectStalePrincipal(c *gin.Context, db *gorm.DB, kind string, err error) {
	if err == gorm.ErrRecordNotFound {
		rejectUnauthenticated(c, kind+" not found")
		return
	}
	util.CallServerError(c, util.APIErrorParams{
		Msg: "Failed to resolve " + kind,
		Err: err,
	})
	c.Abort()
}

// GetPrincipalKind returns the resolved principal kind for the request.
func GetPrincipalKind(c *gin.Context) (util.PrincipalKind, bool) {
	v, ok := c.Get(principalKindKey)
	if !ok {
		return "", false
	}
	kind, ok := v.(util.PrincipalKind)
	return kind, ok
}

// GetHospital returns the authenticated hospital attached by RequireAuth.
func GetHospital(c *gin.Context) (model.Hospital, bool) {
	v, ok := c.Get(hospitalKey)
	if !ok {
		return model.Hospital{}, false
	}
	hospital, ok := v.(model.Hospital)
	return hospital, ok
}

// GetDoctor returns the authenticated doctor attached by RequireAuth.
func GetDoctor(c *gin.Context) (model.Doctor, bool) {
	v, ok := c.Get(doctorKey)
	if !ok {
		return model.Doctor{}, false
	}
	doctor, ok := v.(model.Doctor)
	return doctor, ok
}
