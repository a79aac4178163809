package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// DiskStore writes photos under a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a DiskStore.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	if err := checkPolicy(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uniqueName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func (s *DiskStore) Serve(c *gin.Context) {
	// filepath.Base guards against path traversal in the route parameter.
	name := filepath.Base(c.Param("filename"))
	c.File(filepath.Join(s.dir, name))
}
