// Package source 负责把文档从存储读入内存，解析前一次性读完。
package source

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/icloudza/jsml/convert"
)

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotFile  = errors.New("not a regular file")
)

// Reader 从 afero 文件系统读取文档。
type Reader struct {
	fs      afero.Fs
	maxSize int64
}

// NewReader 返回读取 fs 的 Reader；fs 为 nil 时使用操作系统文件系统。
func NewReader(fs afero.Fs) *Reader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Reader{fs: fs, maxSize: convert.MaxJSONSize}
}

// WithMaxSize 返回限制了文件大小的副本，n <= 0 表示不限制。
func (r *Reader) WithMaxSize(n int64) *Reader {
	cp := *r
	cp.maxSize = n
	return &cp
}

// Read 读取 path 的全部内容。
func (r *Reader) Read(path string) ([]byte, error) {
	fi, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFile)
	}
	if r.maxSize > 0 && fi.Size() > r.maxSize {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, fi.Size(), ErrTooLarge)
	}
	b, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// ReadFile 使用操作系统文件系统读取 path。
func ReadFile(path string) ([]byte, error) {
	return NewReader(nil).Read(path)
}
