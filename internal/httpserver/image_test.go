package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovasilenko/shop_api/internal/models"
)

func TestImageAdd_ToOwnedProduct(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.createAdmin("owner@example.com")
	product := env.createProduct(admin.ID, "sofa", baseTime(t))

	rec := env.do(http.MethodPost, "/api/image", map[string]any{
		"productId": product.ID.String(),
		"url":       "https://cdn.example.com/sofa.jpg",
		"publicId":  "sofa-1",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "sofa-1", body["publicId"])
	assert.Equal(t, product.ID.String(), body["productId"])
}

func TestImageAdd_ForeignProductIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createAdmin("owner@example.com")
	_, intruderToken := env.createAdmin("intruder@example.com")
	product := env.createProduct(owner.ID, "sofa", baseTime(t))

	rec := env.do(http.MethodPost, "/api/image", map[string]any{
		"productId": product.ID.String(),
		"url":       "https://cdn.example.com/sofa.jpg",
		"publicId":  "sofa-1",
	}, intruderToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Image{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImageDelete_ReturnsPublicIDAndRemovesRow(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.createAdmin("owner@example.com")
	product := env.createProduct(admin.ID, "desk", baseTime(t))

	image := models.Image{URL: "https://cdn.example.com/desk.jpg", PublicID: "desk-1", ProductID: product.ID}
	require.NoError(t, env.DB.Create(&image).Error)

	rec := env.do(http.MethodDelete, "/api/image/"+image.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "desk-1", body["publicId"])

	// gone from the product detail
	rec = env.do(http.MethodGet, "/api/product/"+product.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["images"])
}

func TestImageDelete_ForeignOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createAdmin("owner@example.com")
	_, intruderToken := env.createAdmin("intruder@example.com")
	product := env.createProduct(owner.ID, "desk", baseTime(t))

	image := models.Image{URL: "https://cdn.example.com/desk.jpg", PublicID: "desk-1", ProductID: product.ID}
	require.NoError(t, env.DB.Create(&image).Error)

	rec := env.do(http.MethodDelete, "/api/image/"+image.ID.String(), nil, intruderToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var stored models.Image
	assert.NoError(t, env.DB.First(&stored, "id = ?", image.ID).Error, "row survives the rejected delete")
}

func TestImageList_OrderedOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.createAdmin("owner@example.com")
	product := env.createProduct(admin.ID, "shelf", baseTime(t))

	base := baseTime(t)
	for i, publicID := range []string{"shelf-1", "shelf-2", "shelf-3"} {
		img := models.Image{
			URL:       "https://cdn.example.com/" + publicID + ".jpg",
			PublicID:  publicID,
			ProductID: product.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, env.DB.Create(&img).Error)
	}

	rec := env.do(http.MethodGet, "/api/image/list/"+product.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var images []map[string]any
	decodeInto(t, rec, &images)
	require.Len(t, images, 3)
	for i, want := range []string{"shelf-1", "shelf-2", "shelf-3"} {
		assert.Equal(t, want, images[i]["publicId"])
	}
}

func TestImageList_ForeignProductIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createAdmin("owner@example.com")
	_, intruderToken := env.createAdmin("intruder@example.com")
	product := env.createProduct(owner.ID, "shelf", baseTime(t))

	rec := env.do(http.MethodGet, "/api/image/list/"+product.ID.String(), nil, intruderToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImageRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser("buyer@example.com")

	rec := env.do(http.MethodPost, "/api/image", map[string]any{}, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/api/image", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
