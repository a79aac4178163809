package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbContextKey = "db"

// DatabaseMiddleware injects the shared gorm DB handle into the request
// context so handlers do not open their own connections.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped gorm DB handle, or nil when the
// middleware was not installed.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}
