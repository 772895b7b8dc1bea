package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tt := []struct {
		path      string
		namespace string
		filename  string
	}{
		{"a.png", ".", "a.png"},
		{"out/a.png", "out", "a.png"},
		{"/tmp/images/a.png", "/tmp/images", "a.png"},
		{"/a.png", "/", "a.png"},
		{"bucket/prefix/key.jpg", "bucket/prefix", "key.jpg"},
		{`c:\images\a.png`, "c:/images", "a.png"},
		{"dir/", "dir", ""},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("split %s", tc.path), func(t *testing.T) {
			ns, f := SplitPath(tc.path)
			assert.Equal(t, tc.namespace, ns)
			assert.Equal(t, tc.filename, f)
		})
	}
}
