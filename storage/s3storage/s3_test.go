package s3storage

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of path style requests the storage issues.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.SplitN(p, "/", 2)
	bucket := parts[0]

	if len(parts) == 1 || parts[1] == "" {
		if r.Method == http.MethodPut {
			f.buckets[bucket] = true
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch r.Method {
	case http.MethodPut:
		b, _ := ioutil.ReadAll(r.Body)
		f.objects[p] = b
		f.types[p] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		b, ok := f.objects[p]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(b)))
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	case http.MethodHead:
		if _, ok := f.objects[p]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, p)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T) (*RemoteStorage, *fakeS3) {
	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return New(Config{
		AccessKey:        "key",
		AccessSecret:     "secret",
		Region:           "us-east-1",
		Endpoint:         srv.URL,
		S3ForcePathStyle: true,
	}), fake
}

func TestRemoteStorage_RoundTrip(t *testing.T) {
	rs, fake := newTestStorage(t)
	ctx := context.Background()

	item, err := rs.Put(ctx, "images/thumbs", "a.png", bytes.NewReader([]byte("pixels")))
	require.NoError(t, err)
	assert.Equal(t, "images/thumbs/a.png", item.Path)
	assert.True(t, fake.buckets["images"])
	assert.Equal(t, []byte("pixels"), fake.objects["images/thumbs/a.png"])
	assert.Equal(t, "image/png", fake.types["images/thumbs/a.png"])

	var buf bytes.Buffer
	require.NoError(t, rs.Download(ctx, &buf, "images/thumbs", "a.png"))
	assert.Equal(t, "pixels", buf.String())

	require.NoError(t, rs.Remove(ctx, "images/thumbs", "a.png"))
	assert.Empty(t, fake.objects)
}

func TestRemoteStorage_PutContentType(t *testing.T) {
	rs, fake := newTestStorage(t)
	ctx := context.Background()

	tt := []struct {
		filename string
		expected string
	}{
		{"a.jpg", "image/jpeg"},
		{"b.JPEG", "image/jpeg"},
		{"c.gif", "image/gif"},
		{"d.tif", "image/tiff"},
	}

	for _, tc := range tt {
		t.Run(tc.filename, func(t *testing.T) {
			_, err := rs.Put(ctx, "images", tc.filename, strings.NewReader("x"))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, fake.types["images/"+tc.filename])
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		_, err := rs.Put(ctx, "images", "notes.txt", strings.NewReader("x"))
		require.NoError(t, err)
		assert.NotContains(t, fake.types["images/notes.txt"], "image/")
	})
}

func TestRemoteStorage_Errors(t *testing.T) {
	rs, _ := newTestStorage(t)
	ctx := context.Background()

	t.Run("missing object", func(t *testing.T) {
		err := rs.Download(ctx, &bytes.Buffer{}, "images", "missing.png")
		assert.True(t, errors.Is(err, errs.ErrNotFound))
	})

	t.Run("no bucket", func(t *testing.T) {
		_, err := rs.Put(ctx, ".", "a.png", strings.NewReader("x"))
		assert.True(t, errors.Is(err, errs.ErrArgument))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		down := New(Config{Region: "us-east-1", Endpoint: srv.URL, S3ForcePathStyle: true, AccessKey: "k", AccessSecret: "s"})
		down.s3Config.MaxRetries = new(int)

		_, err := down.Put(ctx, "images", "a.png", strings.NewReader("x"))
		assert.True(t, errors.Is(err, storage.ErrStorageFailed))
	})
}

func TestObjectLocation(t *testing.T) {
	tt := []struct {
		namespace string
		bucket    string
		key       string
	}{
		{"images", "images", "a.png"},
		{"images/", "images", "a.png"},
		{"/images/thumbs", "images", "thumbs/a.png"},
		{"images/thumbs/small", "images", "thumbs/small/a.png"},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("namespace %s", tc.namespace), func(t *testing.T) {
			bucket, key := objectLocation(tc.namespace, "a.png")
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	vars := map[string]string{
		"S3_ACCESS_KEY_ID":     "access",
		"S3_SECRET_ACCESS_KEY": "secret",
		"S3_REGION":            "eu-central-1",
		"S3_ENDPOINT":          "http://localhost:9000",
		"S3_FORCE_PATH_STYLE":  "true",
		"S3_SSL":               "false",
	}

	for k, v := range vars {
		prev, had := os.LookupEnv(k)
		require.NoError(t, os.Setenv(k, v))

		k := k
		t.Cleanup(func() {
			if had {
				os.Setenv(k, prev)
			} else {
				os.Unsetenv(k)
			}
		})
	}

	cfg := ConfigFromEnv()
	assert.Equal(t, Config{
		AccessKey:        "access",
		AccessSecret:     "secret",
		Region:           "eu-central-1",
		Endpoint:         "http://localhost:9000",
		S3ForcePathStyle: true,
		EnableSSL:        false,
	}, cfg)

	rs := New(cfg)
	assert.True(t, *rs.s3Config.DisableSSL)
	assert.True(t, *rs.s3Config.S3ForcePathStyle)
}
