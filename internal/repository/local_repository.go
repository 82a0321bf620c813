package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type ImageRepository interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Dir() string
}

type localRepository struct {
	dir string
	log *zap.Logger
}

// NewLocalRepository makes sure dir exists. It runs once at startup so that a
// missing or unwritable directory stops the process before it serves traffic.
func NewLocalRepository(dir string, log *zap.Logger) (ImageRepository, error) {
	repo := &localRepository{
		dir: dir,
		log: log,
	}

	if err := repo.ensureDirExists(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *localRepository) ensureDirExists() error {
	info, err := os.Stat(r.dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("upload path %s is not a directory", r.dir)
		}
		r.log.Info("Upload directory already exists", zap.String("dir", r.dir))
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat upload directory %s: %w", r.dir, err)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", r.dir, err)
	}

	r.log.Info("Upload directory created", zap.String("dir", r.dir))
	return nil
}

func (r *localRepository) Dir() string {
	return r.dir
}

// Save writes data to a new file in the upload directory. The file is opened
// exclusively, so an existing name is never overwritten. A write that fails
// partway can leave a truncated file behind.
func (r *localRepository) Save(ctx context.Context, filename string, data []byte) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path = filepath.Join(r.dir, filename)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
			path = ""
		}
	}()

	if _, err := file.Write(data); err != nil {
		r.log.Error("Failed to write image file",
			zap.String("path", path),
			zap.Error(err))
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
