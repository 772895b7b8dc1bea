package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrStorageFailed = errors.New("storage failed")

type Item struct {
	Path string
	URL  string
}

// Storage keeps whole files. A namespace is a directory for the local
// filesystem and a bucket (optionally followed by a key prefix) for S3.
type Storage interface {
	Put(ctx context.Context, namespace, filename string, source io.Reader) (*Item, error)
	Download(ctx context.Context, dst io.Writer, namespace, filename string) error
	Remove(ctx context.Context, namespace, filename string) error
}

// SplitPath breaks a slash separated path into the namespace and the file name.
// A bare file name belongs to the "." namespace.
func SplitPath(p string) (namespace, filename string) {
	p = strings.ReplaceAll(p, "\\", "/")

	namespace, filename = path.Split(p)
	namespace = strings.TrimSuffix(namespace, "/")

	switch {
	case namespace == "" && strings.HasPrefix(p, "/"):
		namespace = "/"
	case namespace == "":
		namespace = "."
	}

	return namespace, filename
}
