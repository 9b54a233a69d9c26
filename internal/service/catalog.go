package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovasilenko/shop_api/internal/events"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/repo"
	"github.com/ovasilenko/shop_api/internal/search"
	"github.com/ovasilenko/shop_api/internal/util"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Index
}

type ProductPage struct {
	Products   []models.Product
	NextCursor string // empty when this is the last page
}

type ImageInput struct {
	URL      string
	PublicID string
}

type ProductCreate struct {
	Name        string
	Description *string
	Price       float64
	Images      []ImageInput
}

type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "product_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "product_events", "error", err)
	}
}

// List walks the catalog newest-first. ownerID scopes the page to a single
// admin's products; nil lists everything.
func (s *CatalogService) List(ctx context.Context, cursor *util.Cursor, limit int, ownerID *uuid.UUID) (*ProductPage, error) {
	limit = util.ClampLimit(limit)

	items, err := s.Repo.ListProducts(ctx, cursor, limit, ownerID)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{Products: items}
	if len(items) > limit {
		page.Products = items[:limit]
		last := page.Products[limit-1]
		next, err := util.EncodeCursor(last.CreatedAt, last.ID)
		if err != nil {
			return nil, err
		}
		page.NextCursor = next
	}
	return page, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, adminID uuid.UUID, in ProductCreate) (*models.Product, error) {
	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		AdminID:     adminID,
	}
	for _, img := range in.Images {
		product.Images = append(product.Images, models.Image{
			URL:      img.URL,
			PublicID: img.PublicID,
		})
	}

	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.publish(ctx, product.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": product.ID.String(),
		"adminID":   adminID.String(),
		"name":      product.Name,
	})
	s.Search.IndexProduct(ctx, &product)

	return &product, nil
}

func (s *CatalogService) Update(ctx context.Context, adminID, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "product_id", id)

	// Ownership check: a foreign product reports not-found, so existence of
	// other admins' products never leaks.
	product, err := s.Repo.GetOwnedProduct(ctx, id, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_failed", "status", 404, "reason", "missing or not owned")
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, id.String(), map[string]any{
		"type":      "product_updated",
		"productID": id.String(),
		"name":      updated.Name,
	})
	s.Search.IndexProduct(ctx, updated)

	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, adminID, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete", "product_id", id)

	if _, err := s.Repo.GetOwnedProduct(ctx, id, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_failed", "status", 404, "reason", "missing or not owned")
			return ErrNotFound
		}
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id.String(),
	})
	s.Search.DeleteProduct(ctx, id.String())

	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []search.ProductDoc, error) {
	return s.Search.Search(ctx, query, from, size)
}
