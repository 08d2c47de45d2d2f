package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

type fsSource struct {
	root string
}

func NewFsSource(root string) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return &fsSource{root: root}, nil
}

func (f *fsSource) Glob(_ context.Context, pattern string) ([]FileDesc, error) {
	matches, err := filepath.Glob(filepath.Join(f.root, pattern))
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	res := make([]FileDesc, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		res = append(res, FileDesc{Name: filepath.Base(m), Size: info.Size()})
	}
	return res, nil
}

func (f *fsSource) Stat(_ context.Context, name string) (FileDesc, error) {
	info, err := os.Stat(filepath.Join(f.root, name))
	if err != nil {
		return FileDesc{}, err
	}
	return FileDesc{Name: name, Size: info.Size()}, nil
}

func (f *fsSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(f.root, name))
}

func (f *fsSource) String() string {
	return f.root
}
