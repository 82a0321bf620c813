package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"imagesaver/internal/domain"
	"imagesaver/internal/repository"
	"imagesaver/pkg/utils"
)

// ErrProcessing marks every failure after the request passed validation:
// a malformed data URL, a bad Base64 payload or a failed write.
var ErrProcessing = errors.New("image processing failed")

// The stored extension does not follow the data URL header.
const imageExt = ".png"

type ImageService interface {
	SaveImage(ctx context.Context, dataURL string) (*domain.StoredImage, error)
}

type imageService struct {
	repo  repository.ImageRepository
	log   *zap.Logger
	newID func() uuid.UUID
	now   func() time.Time
}

func NewImageService(repo repository.ImageRepository, log *zap.Logger) ImageService {
	return &imageService{
		repo:  repo,
		log:   log,
		newID: uuid.New,
		now:   time.Now,
	}
}

func (s *imageService) SaveImage(ctx context.Context, dataURL string) (*domain.StoredImage, error) {
	header, data, err := utils.ParseDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	imageID := s.newID().String()
	filename := imageID + imageExt

	storagePath, err := s.repo.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	s.log.Info("Image saved",
		zap.String("path", storagePath),
		zap.Int("size", len(data)))

	return &domain.StoredImage{
		ID:          imageID,
		Filename:    filename,
		StoragePath: storagePath,
		URLPath:     URLPath(s.repo.Dir(), filename),
		Size:        int64(len(data)),
		Header:      header,
		SavedAt:     s.now(),
	}, nil
}

// URLPath builds the reference returned to clients, "/<upload-dir>/<filename>".
// Nothing checks that the path is actually served.
func URLPath(dir, filename string) string {
	return path.Join("/", dir, filename)
}
