// Package fsstore serves resource content straight from a directory laid out
// as <root>/<name>/<version>/<file>.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/integrity"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/spf13/afero"
)

// ErrOutsideRoot is returned for a name, version or file that would resolve
// to a path outside the store root.
var ErrOutsideRoot = errors.New("path resolves outside the store root")

type FileStore struct {
	fs   afero.Fs
	root string
}

func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: filepath.Clean(root)}
}

// NewOsFileStore is the FileStore over the real filesystem.
func NewOsFileStore(root string) *FileStore {
	return NewFileStore(afero.NewOsFs(), root)
}

func (f *FileStore) filePath(name, version, file string) (string, error) {
	p := filepath.Join(f.root, name, version, filepath.FromSlash(file))
	if !f.contains(p) {
		return "", fmt.Errorf("%w: %s/%s/%s", ErrOutsideRoot, name, version, file)
	}
	return p, nil
}

func (f *FileStore) contains(p string) bool {
	rel, err := filepath.Rel(f.root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func (f *FileStore) GetResource(ctx context.Context, name, version, file string) (*modelsDB.ResourceDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := f.filePath(name, version, file)
	if err != nil {
		return nil, err
	}
	info, err := f.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, db.ErrResourceNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, db.ErrResourceNotFound
	}

	content, err := afero.ReadFile(f.fs, p)
	if err != nil {
		return nil, err
	}

	return &modelsDB.ResourceDB{
		Name:        name,
		Version:     version,
		File:        file,
		Content:     content,
		ContentType: mime.TypeByExtension(path.Ext(file)),
		Checksum:    string(integrity.ChecksumBytes(content)),
		CreatedAt:   info.ModTime(),
	}, nil
}

// GetVersions lists the version directories under name that contain file.
func (f *FileStore) GetVersions(ctx context.Context, name, file string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(f.root, name)
	if !f.contains(dir) || dir == f.root {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := f.filePath(name, entry.Name(), file)
		if err != nil {
			return nil, err
		}
		exists, err := afero.Exists(f.fs, p)
		if err != nil {
			return nil, err
		}
		if exists {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

func (f *FileStore) Ping() error {
	_, err := f.fs.Stat(f.root)
	return err
}

var _ db.ResourceReader = (*FileStore)(nil)
