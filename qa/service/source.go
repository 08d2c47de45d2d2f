package service

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type FileDesc struct {
	Name string
	Size int64
}

// Source is a flat directory of exports, local or in an object store.
// Names are relative to the source root.
type Source interface {
	// Glob lists the files matching pattern in lexical order.
	Glob(ctx context.Context, pattern string) ([]FileDesc, error)
	// Stat fails with an error matching fs.ErrNotExist for missing files.
	Stat(ctx context.Context, name string) (FileDesc, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

type S3Config struct {
	URL    string
	Key    string
	Secret string
	Region string
	Secure bool
}

// NewSource opens `s3://bucket/prefix` locations through S3 and anything
// else as a local directory.
func NewSource(location string, s3 S3Config) (Source, error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return NewFsSource(location)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return nil, fmt.Errorf("invalid s3 location %q: no bucket", location)
	}
	return NewS3Source(s3, bucket, prefix)
}
