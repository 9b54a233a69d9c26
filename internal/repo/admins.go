package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovasilenko/shop_api/internal/models"
)

func (r *GormRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Create(admin).Error
}

func (r *GormRepo) SaveAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Save(admin).Error
}
