// Package importer loads a directory of published assets into a resource store.
package importer

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/integrity"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/ether/etherdelta/lib/resource"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Importer struct {
	store  db.ResourceMethods
	logger *zap.SugaredLogger
}

func New(store db.ResourceMethods, logger *zap.SugaredLogger) *Importer {
	return &Importer{store: store, logger: logger}
}

// ImportDir saves every file below root/<name>/<version>/ into the store and
// returns how many were saved. A file that fails does not stop the walk; all
// failures are returned together.
func (i *Importer) ImportDir(ctx context.Context, fs afero.Fs, root string) (int, error) {
	root = filepath.Clean(root)
	imported := 0
	var result *multierror.Error

	walkErr := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		segments := strings.SplitN(filepath.ToSlash(rel), "/", 3)
		if len(segments) < 3 {
			i.logger.Warnf("Skipping %s: not below <name>/<version>/", p)
			return nil
		}

		id := resource.Identity{Name: segments[0], Version: segments[1], File: segments[2]}
		if err := i.importFile(ctx, fs, p, id); err != nil {
			i.logger.Warnf("Failed to import %s: %v", id, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", id, err))
			return nil
		}
		imported++
		i.logger.Debugf("Imported %s", id)
		return nil
	})
	if walkErr != nil {
		result = multierror.Append(result, walkErr)
	}

	i.logger.Infof("Imported %d resources from %s", imported, root)
	return imported, result.ErrorOrNil()
}

func (i *Importer) importFile(ctx context.Context, fs afero.Fs, p string, id resource.Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}

	content, err := afero.ReadFile(fs, p)
	if err != nil {
		return err
	}

	return i.store.SaveResource(ctx, modelsDB.ResourceDB{
		Name:        id.Name,
		Version:     id.Version,
		File:        id.File,
		Content:     content,
		ContentType: mime.TypeByExtension(path.Ext(id.File)),
		Checksum:    string(integrity.ChecksumBytes(content)),
	})
}
