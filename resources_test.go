package yadisk_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yadisk "github.com/artemk/yandex-disk"
)

func TestMetadata(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/resources", r.URL.Path)
		assert.Equal(t, "disk:/docs/report.pdf", r.URL.Query().Get("path"))
		assert.Equal(t, "name,size", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"path":"disk:/docs/report.pdf","type":"file","name":"report.pdf","size":2048,"md5":"abc"}`))
	}))

	res, err := client.Metadata(context.Background(), "disk:/docs/report.pdf", yadisk.WithFields("name", "size"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", res.Name)
	assert.Equal(t, int64(2048), res.Size)
	assert.True(t, res.IsFile())
	assert.False(t, res.IsDir())
}

func TestFiles_PreservesOrderAndOffset(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resources/files", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("offset"))
		w.Write([]byte(`{
			"items": [{"path":"disk:/z.txt"},{"path":"disk:/a.txt"},{"path":"disk:/m.txt"}],
			"limit": 3,
			"offset": 40
		}`))
	}))

	list, err := client.Files(context.Background(), yadisk.WithLimit(3), yadisk.WithOffset(40))
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "disk:/z.txt", list.Items[0].Path)
	assert.Equal(t, "disk:/a.txt", list.Items[1].Path)
	assert.Equal(t, "disk:/m.txt", list.Items[2].Path)
	assert.Equal(t, 40, list.Offset)
}

func TestLastUploaded(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resources/last-uploaded", r.URL.Path)
		assert.Equal(t, "image", r.URL.Query().Get("media_type"))
		w.Write([]byte(`{"items":[{"path":"disk:/new.jpg"}],"limit":20}`))
	}))

	list, err := client.LastUploaded(context.Background(), yadisk.WithMediaType("image"))
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "disk:/new.jpg", list.Items[0].Path)
}

func TestUpdate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/resources", r.URL.Path)
		assert.Equal(t, "disk:/notes.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			CustomProperties map[string]interface{} `json:"custom_properties"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "urgent", body.CustomProperties["label"])

		w.Write([]byte(`{"path":"disk:/notes.txt","custom_properties":{"label":"urgent"}}`))
	}))

	res, err := client.Update(context.Background(), "disk:/notes.txt", map[string]interface{}{"label": "urgent"})
	require.NoError(t, err)
	assert.Equal(t, "urgent", res.CustomProperties["label"])
}

func TestCopyAndMove(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(c *yadisk.Client) (*yadisk.Link, error)
	}{
		{
			name: "copy",
			path: "/resources/copy",
			call: func(c *yadisk.Client) (*yadisk.Link, error) {
				return c.Copy(context.Background(), "disk:/a.txt", "disk:/b.txt", yadisk.WithOverwrite(true))
			},
		},
		{
			name: "move",
			path: "/resources/move",
			call: func(c *yadisk.Client) (*yadisk.Link, error) {
				return c.Move(context.Background(), "disk:/a.txt", "disk:/b.txt", yadisk.WithOverwrite(true))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, test.path, r.URL.Path)
				assert.Equal(t, "disk:/a.txt", r.URL.Query().Get("from"))
				assert.Equal(t, "disk:/b.txt", r.URL.Query().Get("path"))
				assert.Equal(t, "true", r.URL.Query().Get("overwrite"))
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"href":"https://cloud-api.yandex.net/v1/disk/resources?path=disk:/b.txt","method":"GET"}`))
			}))

			link, err := test.call(client)
			require.NoError(t, err)
			assert.Equal(t, http.MethodGet, link.Method)
			assert.NotEmpty(t, link.Href)
		})
	}
}

func TestOperation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/operations/33923d1...", r.URL.Path)
		w.Write([]byte(`{"status":"in-progress"}`))
	}))

	status, err := client.Operation(context.Background(), "33923d1...")
	require.NoError(t, err)
	assert.Equal(t, yadisk.OperationInProgress, status.Status)
}

func TestDelete_EmptyBodyIsSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "disk:/old.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "true", r.URL.Query().Get("permanently"))
		w.WriteHeader(http.StatusNoContent)
	}))

	link, err := client.Delete(context.Background(), "disk:/old.txt", yadisk.WithPermanently(true))
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestDelete_AsyncOperationLink(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"href":"https://cloud-api.yandex.net/v1/disk/operations/123","method":"GET"}`))
	}))

	link, err := client.Delete(context.Background(), "disk:/big-folder")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Contains(t, link.Href, "/operations/123")
}

func TestMkdir(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/resources", r.URL.Path)
		assert.Equal(t, "disk:/photos", r.URL.Query().Get("path"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"href":"https://cloud-api.yandex.net/v1/disk/resources?path=disk:/photos","method":"GET"}`))
	}))

	link, err := client.Mkdir(context.Background(), "disk:/photos")
	require.NoError(t, err)
	assert.NotEmpty(t, link.Href)
}

// folderServer imitates the folder-creation endpoint: a folder can only be
// created below an existing parent, and re-creating an existing folder is
// a conflict with a distinct error code.
type folderServer struct {
	mux      sync.Mutex
	existing map[string]bool
	created  []string
}

func newFolderServer(existing ...string) *folderServer {
	srv := &folderServer{existing: map[string]bool{"disk:": true, "disk:/": true}}
	for _, path := range existing {
		srv.existing[path] = true
	}
	return srv
}

func (s *folderServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.Lock()
	defer s.mux.Unlock()

	path := r.URL.Query().Get("path")
	if s.existing[path] {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, `{"error":"DiskPathPointsToExistentDirectoryError","description":"folder '%s' already exists"}`, path)
		return
	}
	if !s.existing[parentOf(path)] {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, `{"error":"DiskPathDoesntExistsError","description":"parent of '%s' does not exist"}`, path)
		return
	}
	s.existing[path] = true
	s.created = append(s.created, path)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `{"href":"https://cloud-api.yandex.net/v1/disk/resources?path=%s","method":"GET"}`, path)
}

func parentOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			if i == len("disk:") {
				return path[:i+1]
			}
			return path[:i]
		}
	}
	return path
}

func TestCreateFolder_RootIsIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for the root path")
	}))

	for _, path := range []string{"disk:", "disk:/", ""} {
		created, err := client.CreateFolder(context.Background(), path, false)
		require.NoError(t, err)
		assert.Equal(t, "disk:/", created)
	}
}

func TestCreateFolder_Direct(t *testing.T) {
	srv := newFolderServer()
	client := newTestClient(t, srv)

	created, err := client.CreateFolder(context.Background(), "disk:/photos", false)
	require.NoError(t, err)
	assert.Equal(t, "disk:/photos", created)
	assert.Equal(t, []string{"disk:/photos"}, srv.created)
}

func TestCreateFolder_MissingParentWithoutForce(t *testing.T) {
	srv := newFolderServer("disk:/a")
	client := newTestClient(t, srv)

	_, err := client.CreateFolder(context.Background(), "disk:/a/b/c", false)
	require.Error(t, err)

	apiErr, ok := err.(*yadisk.Error)
	require.True(t, ok)
	assert.Equal(t, "DiskPathDoesntExistsError", apiErr.Code)
	assert.Empty(t, srv.created)
}

func TestCreateFolder_ForceCreatesAncestorsInOrder(t *testing.T) {
	srv := newFolderServer("disk:/a")
	client := newTestClient(t, srv)

	created, err := client.CreateFolder(context.Background(), "disk:/a/b/c", true)
	require.NoError(t, err)
	assert.Equal(t, "disk:/a/b/c", created)
	assert.Equal(t, []string{"disk:/a/b", "disk:/a/b/c"}, srv.created)
}

func TestCreateFolder_ExistingFolderIsNoop(t *testing.T) {
	srv := newFolderServer("disk:/a")
	client := newTestClient(t, srv)

	created, err := client.CreateFolder(context.Background(), "disk:/a", false)
	require.NoError(t, err)
	assert.Equal(t, "disk:/a", created)
	assert.Empty(t, srv.created)
}

func TestCreateFolder_ForcePropagatesOtherErrors(t *testing.T) {
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		if calls == 1 {
			w.Write([]byte(`{"error":"DiskPathDoesntExistsError","description":"parent missing"}`))
			return
		}
		w.Write([]byte(`{"error":"DiskAccessForbiddenError","description":"no permission"}`))
	}))

	_, err := client.CreateFolder(context.Background(), "disk:/a/b", true)
	require.Error(t, err)

	apiErr, ok := err.(*yadisk.Error)
	require.True(t, ok)
	assert.Equal(t, "DiskAccessForbiddenError", apiErr.Code)
	assert.Equal(t, 2, calls, "the walk must stop at the first hard error")
}
