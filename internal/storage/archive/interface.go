// internal/storage/archive/interface.go
package archive

import (
	"context"
	"fmt"
)

// Storage is a flat blob store addressed by slash-separated paths. Profile
// documents are read from it and exported fixtures written to it.
type Storage interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths under the prefix, relative to the store root
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// Backend types accepted by Open.
const (
	TypeLocalFS = "localfs"
	TypeS3      = "s3"
)

// Options selects and configures a backend.
type Options struct {
	Type string
	Path string // localfs root
	S3   S3Config
}

// Open creates the backend described by opts.
func Open(opts Options) (Storage, error) {
	switch opts.Type {
	case TypeLocalFS:
		fs, err := NewLocalFS(opts.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case TypeS3:
		s, err := NewS3(opts.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown archive type %q", opts.Type)
	}
}
