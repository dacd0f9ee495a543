package service

import (
	"context"
	"io"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"go.uber.org/zap"
)

// UploadImage stores an evidence picture and keeps only its URL and public id.
func (s *Service) UploadImage(ctx context.Context, name string, body io.Reader) (*domain.EvidenceImage, error) {
	if err := domain.CheckImageName(name); err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, domain.ErrImageStoreDisabled
	}

	img, err := s.images.Upload(ctx, name, body)
	if err != nil {
		return nil, s.fail("Upload image", err)
	}

	saved, err := s.repo.CreateEvidenceImage(ctx, img)
	if err != nil {
		if derr := s.images.Delete(ctx, img.PublicID); derr != nil {
			s.logger.Error("orphan image left in storage",
				zap.String("public_id", img.PublicID), zap.Error(derr))
		}
		return nil, s.fail("Save image", err)
	}
	return saved, nil
}

func (s *Service) DeleteImage(ctx context.Context, publicID string) error {
	if s.images == nil {
		return domain.ErrImageStoreDisabled
	}
	if _, err := s.repo.ReadEvidenceImage(ctx, publicID); err != nil {
		return s.fail("Get image", err)
	}
	if err := s.repo.DeleteEvidenceImage(ctx, publicID); err != nil {
		return s.fail("Delete image", err)
	}
	if err := s.images.Delete(ctx, publicID); err != nil {
		return s.fail("Destroy image", err)
	}
	return nil
}
