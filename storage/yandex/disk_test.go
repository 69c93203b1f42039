package yandex_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yadisk "github.com/artemk/yandex-disk"
	"github.com/artemk/yandex-disk/storage/yandex"
)

// newDisk starts a test server and returns a disk rooted at "app" on it.
func newDisk(t *testing.T, mux *http.ServeMux) (*yandex.Disk, string) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := yadisk.NewClient("test-token", yadisk.WithBaseURL(srv.URL))
	return yandex.NewDisk(client, yandex.BaseDir("app")), srv.URL
}

func TestDisk_Put(t *testing.T) {
	var uploaded []byte
	mux := http.NewServeMux()
	disk, url := newDisk(t, mux)

	mux.HandleFunc("/resources/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "disk:/app/docs/a.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "true", r.URL.Query().Get("overwrite"))
		fmt.Fprintf(w, `{"href":"%s/upload-target","method":"PUT"}`, url)
	})
	mux.HandleFunc("/upload-target", func(w http.ResponseWriter, r *http.Request) {
		uploaded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, disk.Put(context.Background(), "docs/a.txt", []byte("Hi.")))
	assert.Equal(t, []byte("Hi."), uploaded)
}

func TestDisk_Get(t *testing.T) {
	mux := http.NewServeMux()
	disk, url := newDisk(t, mux)

	mux.HandleFunc("/resources/download", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "disk:/app/docs/a.txt", r.URL.Query().Get("path"))
		fmt.Fprintf(w, `{"href":"%s/file-content","method":"GET"}`, url)
	})
	mux.HandleFunc("/file-content", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hi."))
	})

	b, err := disk.Get(context.Background(), "docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("Hi."), b)
}

func TestDisk_Delete(t *testing.T) {
	mux := http.NewServeMux()
	disk, _ := newDisk(t, mux)

	mux.HandleFunc("/resources", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "disk:/app/docs/a.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "true", r.URL.Query().Get("permanently"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, disk.Delete(context.Background(), "docs/a.txt"))
}

func TestDisk_GetURL(t *testing.T) {
	mux := http.NewServeMux()
	disk, _ := newDisk(t, mux)

	mux.HandleFunc("/resources/publish", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "disk:/app/docs/a.txt", r.URL.Query().Get("path"))
		w.Write([]byte(`{"href":"https://cloud-api.yandex.net/v1/disk/resources?path=disk:/app/docs/a.txt","method":"GET"}`))
	})
	mux.HandleFunc("/resources", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"path":"disk:/app/docs/a.txt","public_url":"https://yadi.sk/d/abcdef"}`))
	})

	url, err := disk.GetURL(context.Background(), "docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://yadi.sk/d/abcdef", url)
}

func TestDisk_List(t *testing.T) {
	mux := http.NewServeMux()
	disk, _ := newDisk(t, mux)

	mux.HandleFunc("/resources/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [
				{"path":"disk:/app/docs/a.txt"},
				{"path":"disk:/other/b.txt"},
				{"path":"disk:/app/docs/sub/c.txt"}
			],
			"limit": 100,
			"offset": 0
		}`))
	})

	paths, err := disk.List(context.Background(), "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"disk:/app/docs/a.txt", "disk:/app/docs/sub/c.txt"}, paths)
}
