// Package storage persists downloaded dream images. Local disk is the
// default, an S3 bucket can be selected through storage.type
package storage

import (
	"context"
	"io"

	"github.com/spf13/viper"
)

type Store interface {
	// Save persists the stream under name and returns the reference
	// callers should keep: an absolute file path for local storage,
	// an object URL for S3
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

func New() (Store, error) {
	if viper.GetString("storage.type") == "s3" {
		return NewS3()
	}

	return NewLocal(viper.GetString("storage.path"))
}
