package upload

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
)

type blob struct {
	data        []byte
	contentType string
}

// MemoryStore keeps photos in process memory. Suited to ephemeral
// deployments without a writable filesystem; blobs do not survive restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]blob)}
}

func (s *MemoryStore) Save(fh *multipart.FileHeader) (string, error) {
	if err := checkPolicy(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	name := uniqueName(fh.Filename)
	s.mu.Lock()
	s.blobs[name] = blob{data: data, contentType: contentType}
	s.mu.Unlock()

	return "/uploads/" + name, nil
}

func (s *MemoryStore) Serve(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))

	s.mu.RLock()
	b, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, b.contentType, b.data)
}
