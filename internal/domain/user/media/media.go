package media

import (
	"context"
	"io"
)

// File is one incoming upload, decoupled from the transport's multipart
// representation.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Upload identifies a stored object: Key for later deletion, URL for
// serving to clients.
type Upload struct {
	URL string
	Key string
}

type Store interface {
	Upload(ctx context.Context, f File) (Upload, error)

	Delete(ctx context.Context, key string) error
}
