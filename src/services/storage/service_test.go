package storage

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractFilename(t *testing.T) {
	assert.Equal(t, "abc.pdf", ExtractFilename("http://files.example.com/storage/file/abc.pdf"))
	assert.Equal(t, "nested/abc.pdf", ExtractFilename("http://files.example.com/storage/file/nested/abc.pdf"))
	assert.Equal(t, "", ExtractFilename("http://files.example.com/other/abc.pdf"))
	assert.Equal(t, "", ExtractFilename(""))
}

func TestExtractFileURLs(t *testing.T) {
	formData := models.FormData{
		"field1": map[string]interface{}{
			"q1": "http://files/storage/file/a.pdf",
			"q2": "ข้อความธรรมดา",
			"q3": []interface{}{"x"},
		},
		"field2": map[string]interface{}{
			"q4": "http://files/storage/file/b.png",
		},
		"not_a_section": "scalar",
	}

	urls := ExtractFileURLs(formData)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, "http://files/storage/file/a.pdf")
	assert.Contains(t, urls, "http://files/storage/file/b.png")
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/upload", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"msg":"ok","data":{"url":"http://files/storage/file/x.pdf","filename":"x.pdf","originalName":"doc.pdf","size":4,"type":"application/pdf"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	uploaded, err := client.Upload("doc.pdf", "application/pdf", strings.NewReader("data"))
	assert.NoError(t, err)
	assert.Equal(t, "http://files/storage/file/x.pdf", uploaded.URL)
	assert.Equal(t, "x.pdf", uploaded.Filename)
}

func TestUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"msg":"disk full"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	_, err := client.Upload("doc.pdf", "application/pdf", strings.NewReader("data"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestUploadWithoutBaseURL(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Upload("doc.pdf", "application/pdf", strings.NewReader("data"))
	assert.Error(t, err)
}

func TestCleanupOldFiles(t *testing.T) {
	var mu sync.Mutex
	deleted := []string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		mu.Lock()
		deleted = append(deleted, strings.TrimPrefix(r.URL.Path, "/storage/file/"))
		mu.Unlock()
		w.Write([]byte(`{"success":true,"msg":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)

	oldData := models.FormData{
		"field1": map[string]interface{}{
			"q1": srv.URL + "/storage/file/removed.pdf",
			"q2": srv.URL + "/storage/file/kept.pdf",
		},
	}
	newData := models.FormData{
		"field1": map[string]interface{}{
			"q2": srv.URL + "/storage/file/kept.pdf",
		},
	}

	client.CleanupOldFiles(oldData, newData)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"removed.pdf"}, deleted)
}

func TestCleanupOldFilesNothingRemoved(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true,"msg":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	formData := models.FormData{
		"field1": map[string]interface{}{"q1": srv.URL + "/storage/file/same.pdf"},
	}

	client.CleanupOldFiles(formData, formData)
	assert.Equal(t, 0, calls)
}
