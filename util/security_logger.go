package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/model"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventRegistration       SecurityEventType = "REGISTRATION"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventAccountDeactivated SecurityEventType = "ACCOUNT_DEACTIVATED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
	EventStorageFailure     SecurityEventType = "STORAGE_FAILURE"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	Principal string // "hospital:<id>" or "doctor:<id>" when known
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var securityLogger *log.Logger
var securityDB *gorm.DB

// SetSecurityLoggerDB sets a gorm DB instance used by the security logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityDB = db
}

func init() {
	securityLogger = log.New(os.Stdout, "[SECURITY] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs a security event to stdout and, when a DB has been
// attached, persists it best-effort to the security_logs table.
func LogSecurityEvent(event SecurityEvent) {
	msg := fmt.Sprintf("Event=%s Principal=%s Email=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.Principal),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log the Details map directly to avoid injection
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	securityLogger.Println(msg)

	if securityDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	// Attempt to resolve city/country for the IP (best-effort, local DB then cache)
	city, country := GetIPLocation(event.IP)
	var location string
	if city != "" && country != "" {
		location = fmt.Sprintf("%s/%s", city, country)
	} else if country != "" {
		location = country
	} else if city != "" {
		location = city
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		Principal: sanitizeLogValue(event.Principal),
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(location),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}

	// best-effort write; ignore errors but log them
	if err := securityDB.Create(&entry).Error; err != nil {
		securityLogger.Printf("Failed to persist security event: %v", err)
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(principal, email, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		Principal: principal,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Login successful",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(email, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(principal, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		Principal: principal,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogDeactivatedAccess logs a request rejected because the doctor account is inactive.
func LogDeactivatedAccess(principal, ip, resource string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountDeactivated,
		Principal: principal,
		IP:        ip,
		Message:   fmt.Sprintf("Deactivated account attempted to access %s", resource),
	})
}

// LogStorageFailure logs a backing-store failure for operator visibility.
func LogStorageFailure(operation string, err error) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventStorageFailure,
		Message:   fmt.Sprintf("Storage failure during %s: %v", operation, err),
	})
}

// GetSecurityLoggerForTest returns the current security logger for testing purposes
func GetSecurityLoggerForTest() *log.Logger {
	return securityLogger
}

// SetSecurityLoggerForTest sets a custom logger for testing purposes
func SetSecurityLoggerForTest(logger *log.Logger) {
	securityLogger = logger
}
