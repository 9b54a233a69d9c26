package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovasilenko/shop_api/internal/models"
)

type RegisterRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name"     validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type ImageInput struct {
	URL      string `json:"url"      validate:"required,url"`
	PublicID string `json:"publicId" validate:"required"`
}

type CreateProductRequest struct {
	Name        string       `json:"name"        validate:"required,min=1"`
	Description *string      `json:"description"`
	Price       float64      `json:"price"       validate:"gte=0"`
	Images      []ImageInput `json:"images"      validate:"omitempty,dive"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
}

type ListQuery struct {
	Limit  int    `query:"limit"  validate:"omitempty,min=1,max=100"`
	Cursor string `query:"cursor"`
}

type AddImageRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	URL       string `json:"url"       validate:"required,url"`
	PublicID  string `json:"publicId"  validate:"required"`
}

type SendMailRequest struct {
	Name    string `json:"name"    validate:"required,min=1"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1"`
	Message string `json:"message" validate:"required,min=1"`
}

// Profile is the public projection of a User or Admin row; the password
// hash never crosses the wire.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ProfileFromUser(u *models.User) Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func ProfileFromAdmin(a *models.Admin) Profile {
	return Profile{ID: a.ID, Email: a.Email, Name: a.Name, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name"`
	Email string    `json:"email"`
}

type ProductView struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Price       float64        `json:"price"`
	AdminID     uuid.UUID      `json:"adminId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Images      []models.Image `json:"images"`
	Admin       *OwnerSummary  `json:"admin,omitempty"`
}

func ViewFromProduct(p *models.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		AdminID:     p.AdminID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Images:      p.Images,
	}
	if view.Images == nil {
		view.Images = []models.Image{}
	}
	if p.Admin != nil {
		view.Admin = &OwnerSummary{ID: p.Admin.ID, Name: p.Admin.Name, Email: p.Admin.Email}
	}
	return view
}

func ViewsFromProducts(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ViewFromProduct(&products[i])
	}
	return views
}
