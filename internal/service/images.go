package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/repo"
)

type ImageService struct {
	Repo *repo.GormRepo
}

func (s *ImageService) Add(ctx context.Context, adminID, productID uuid.UUID, url, publicID string) (*models.Image, error) {
	l := logging.FromContext(ctx).With("svc", "image.add", "product_id", productID)

	if _, err := s.Repo.GetOwnedProduct(ctx, productID, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("add_failed", "status", 404, "reason", "product missing or not owned")
			return nil, ErrNotFound
		}
		return nil, err
	}

	image := models.Image{URL: url, PublicID: publicID, ProductID: productID}
	if err := s.Repo.CreateImage(ctx, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// Delete removes the image row and hands back its external asset reference
// so the caller can clean up stored media.
func (s *ImageService) Delete(ctx context.Context, adminID, imageID uuid.UUID) (string, error) {
	l := logging.FromContext(ctx).With("svc", "image.delete", "image_id", imageID)

	image, err := s.Repo.GetImageWithProduct(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_failed", "status", 404, "reason", "image not found")
			return "", ErrNotFound
		}
		return "", err
	}

	if image.Product == nil || image.Product.AdminID != adminID {
		l.Warn("delete_failed", "status", 404, "reason", "image not owned")
		return "", ErrNotFound
	}

	if err := s.Repo.DeleteImage(ctx, imageID); err != nil {
		return "", err
	}
	return image.PublicID, nil
}

func (s *ImageService) ListByProduct(ctx context.Context, adminID, productID uuid.UUID) ([]models.Image, error) {
	l := logging.FromContext(ctx).With("svc", "image.list", "product_id", productID)

	if _, err := s.Repo.GetOwnedProduct(ctx, productID, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("list_failed", "status", 404, "reason", "product missing or not owned")
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.Repo.ListImagesByProduct(ctx, productID)
}
