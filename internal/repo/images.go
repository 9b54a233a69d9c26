package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovasilenko/shop_api/internal/models"
)

func (r *GormRepo) CreateImage(ctx context.Context, image *models.Image) error {
	return r.DB.WithContext(ctx).Create(image).Error
}

func (r *GormRepo) GetImageWithProduct(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := r.DB.WithContext(ctx).
		Preload("Product").
		First(&image, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *GormRepo) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Image{}, "id = ?", id).Error
}

func (r *GormRepo) ListImagesByProduct(ctx context.Context, productID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
