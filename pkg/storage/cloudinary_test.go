package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(baseURL string) *CloudinaryStore {
	return &CloudinaryStore{
		client:    resty.New().SetBaseURL(baseURL).SetTimeout(2 * time.Second),
		cloudName: "test",
		apiKey:    "key",
		apiSecret: "secret",
		folder:    "vaatco",
	}
}

func TestSign_SortedParams(t *testing.T) {
	s := testStore("http://unused")

	a := s.sign(map[string]string{"b": "2", "a": "1"})
	b := s.sign(map[string]string{"a": "1", "b": "2"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 40) // SHA-1十六进制长度
}

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "vaatco", r.FormValue("folder"))
		assert.NotEmpty(t, r.FormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"secure_url": "https://cdn.example.com/vaatco/img.jpg",
			"public_id":  r.FormValue("public_id"),
			"width":      800,
			"height":     600,
			"format":     "jpg",
			"bytes":      12345,
		})
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	result, err := s.Upload(context.Background(), strings.NewReader("fake image bytes"), "img.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/vaatco/img.jpg", result.URL)
	assert.NotEmpty(t, result.PublicID)
	assert.Equal(t, 800, result.Width)
}

func TestUpload_ServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	_, err := s.Upload(context.Background(), strings.NewReader("x"), "img.jpg")
	assert.Error(t, err)
}

func TestDestroy_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/image/destroy", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	assert.NoError(t, s.Destroy(context.Background(), "vaatco/img"))
}

func TestDestroy_NotFoundTreatedAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"result": "not found"})
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	assert.NoError(t, s.Destroy(context.Background(), "vaatco/missing"))
}

func TestDestroy_UnexpectedResultFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "error"})
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	assert.Error(t, s.Destroy(context.Background(), "vaatco/img"))
}

func TestUpload_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	s := testStore(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Upload(ctx, strings.NewReader("x"), "img.jpg")
	assert.Error(t, err)
}
