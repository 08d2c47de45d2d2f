package service

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type s3Source struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewS3Source(cfg S3Config, bucket, prefix string) (Source, error) {
	client, err := minio.New(cfg.URL, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Key, cfg.Secret, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &s3Source{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *s3Source) Glob(ctx context.Context, pattern string) ([]FileDesc, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix: s.prefix + literalPrefix(pattern),
	})
	var res []FileDesc
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, s.prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if ok, _ := path.Match(pattern, name); !ok {
			continue
		}
		res = append(res, FileDesc{Name: name, Size: obj.Size})
	}
	slices.SortFunc(res, func(a, b FileDesc) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}

func (s *s3Source) Stat(ctx context.Context, name string) (FileDesc, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.prefix+name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return FileDesc{}, fmt.Errorf("s3://%s/%s%s: %w", s.bucket, s.prefix, name, fs.ErrNotExist)
		}
		return FileDesc{}, err
	}
	return FileDesc{Name: name, Size: info.Size}, nil
}

func (s *s3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, s.prefix+name, minio.GetObjectOptions{})
}

func (s *s3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}

// literalPrefix is the part of a glob pattern before its first meta character.
func literalPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, `*?[\`); i >= 0 {
		return pattern[:i]
	}
	return pattern
}
