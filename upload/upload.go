// Package upload stores request-supplied profile photos and hands back a
// reference path that records can carry. Two interchangeable stores exist:
// disk for ordinary deployments and memory for ephemeral ones. Both enforce
// the same file policy: jpeg/jpg/png only, at most 5 MB.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxFileSize is the upload size cap in bytes.
const MaxFileSize = 5 * 1024 * 1024

// File-policy errors. Handlers map these to 400/413 responses.
var (
	ErrFileType     = errors.New("only images (jpeg, jpg, png) are allowed")
	ErrFileTooLarge = fmt.Errorf("file size too large, max %d MB allowed", MaxFileSize/(1024*1024))
)

// Store persists an uploaded photo and serves previously stored ones.
type Store interface {
	// Save validates the file against the upload policy and stores it,
	// returning the reference path (e.g. "/uploads/1712345678.jpg").
	Save(fh *multipart.FileHeader) (string, error)
	// Serve writes the photo named by the "filename" route parameter.
	Serve(c *gin.Context)
}

// New selects a store implementation by driver name ("disk" or "memory").
func New(driver, dir string) (Store, error) {
	switch driver {
	case "", "disk":
		return NewDiskStore(dir)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown upload driver: %s", driver)
}

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// checkPolicy validates extension, declared content type and size.
func checkPolicy(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return ErrFileType
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !allowedContentTypes[ct] {
		return ErrFileType
	}
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// uniqueName builds a collision-resistant stored filename keeping the
// original extension.
func uniqueName(original string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(original)))
}
