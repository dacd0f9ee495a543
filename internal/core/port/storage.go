package port

import (
	"context"
	"io"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

//go:generate mockgen -source=storage.go -destination=mock/storage.go -package=mock
type ImageStore interface {
	Upload(ctx context.Context, name string, body io.Reader) (*domain.EvidenceImage, error)
	Delete(ctx context.Context, publicID string) error
}
