package imagestore

import (
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("object not found")

// Object is a stored photo opened for reading.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
