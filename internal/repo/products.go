package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/util"
)

// ListProducts returns up to limit+1 rows so the caller can detect a next
// page. ownerID narrows the listing to a single admin's products.
func (r *GormRepo) ListProducts(ctx context.Context, cursor *util.Cursor, limit int, ownerID *uuid.UUID) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Images").
		Preload("Admin").
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	if ownerID != nil {
		q = q.Where("admin_id = ?", *ownerID)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Images").
		Preload("Admin").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetOwnedProduct loads a product only when it belongs to adminID;
// a foreign product behaves exactly like a missing one.
func (r *GormRepo) GetOwnedProduct(ctx context.Context, id, adminID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts the product row together with any initial images in
// one create, so a failed image insert rolls the product back too.
func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Select("Images").
		Delete(&models.Product{ID: id}).Error
}
