package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="photo"; filename="` + filename + `"`}
	if contentType != "" {
		h["Content-Type"] = []string{contentType}
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	files := req.MultipartForm.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
		wantErr     error
	}{
		{"jpeg ok", "photo.jpeg", "image/jpeg", 100, nil},
		{"jpg ok", "photo.jpg", "image/jpeg", 100, nil},
		{"png ok", "photo.png", "image/png", 100, nil},
		{"uppercase extension ok", "PHOTO.JPG", "image/jpeg", 100, nil},
		{"pdf rejected", "document.pdf", "application/pdf", 100, ErrFileType},
		{"gif rejected", "anim.gif", "image/gif", 100, ErrFileType},
		{"no extension rejected", "photo", "image/jpeg", 100, ErrFileType},
		{"image extension with lying content type", "photo.png", "application/octet-stream", 100, ErrFileType},
		{"oversized rejected", "photo.jpg", "image/jpeg", MaxFileSize + 1, ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := makeFileHeader(t, tt.filename, tt.contentType, bytes.Repeat([]byte("x"), tt.size))
			err := checkPolicy(fh)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewSelectsDriver(t *testing.T) {
	dir := t.TempDir()

	store, err := New("disk", dir)
	require.NoError(t, err)
	assert.IsType(t, &DiskStore{}, store)

	store, err = New("", dir)
	require.NoError(t, err)
	assert.IsType(t, &DiskStore{}, store, "disk is the default driver")

	store, err = New("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = New("s3", "")
	assert.Error(t, err)
}

func TestDiskStoreSaveAndServe(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	content := []byte("fake-image-bytes")
	fh := makeFileHeader(t, "photo.jpg", "image/jpeg", content)

	ref, err := store.Save(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	name := strings.TrimPrefix(ref, "/uploads/")
	onDisk, err := os.ReadFile(dir + "/" + name)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	r := gin.New()
	r.GET("/uploads/:filename", store.Serve)
	req := httptest.NewRequest(http.MethodGet, ref, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, content, rr.Body.Bytes())
}

func TestDiskStoreRejectsBadFiles(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(makeFileHeader(t, "evil.exe", "application/octet-stream", []byte("x")))
	assert.ErrorIs(t, err, ErrFileType)
}

func TestMemoryStoreSaveAndServe(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	store := NewMemoryStore()

	content := []byte("fake-png-bytes")
	ref, err := store.Save(makeFileHeader(t, "photo.png", "image/png", content))
	require.NoError(t, err)

	r := gin.New()
	r.GET("/uploads/:filename", store.Serve)

	req := httptest.NewRequest(http.MethodGet, ref, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, content, rr.Body.Bytes())
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUniqueNameKeepsExtension(t *testing.T) {
	first := uniqueName("photo.JPG")
	second := uniqueName("photo.JPG")
	assert.True(t, strings.HasSuffix(first, ".jpg"))
	assert.NotEqual(t, first, second)
}
