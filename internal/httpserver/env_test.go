package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovasilenko/shop_api/internal/events"
	"github.com/ovasilenko/shop_api/internal/hash"
	"github.com/ovasilenko/shop_api/internal/mail"
	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/repo"
	"github.com/ovasilenko/shop_api/internal/search"
	"github.com/ovasilenko/shop_api/internal/service"
	"github.com/ovasilenko/shop_api/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Mailer *fakeMailer
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so the in-memory database is shared across queries
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.User{}, &models.Product{}, &models.Image{}))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	rp := &repo.GormRepo{DB: db}
	producer := events.NewProducer(nil)
	index := &search.Index{}
	mailer := &fakeMailer{}

	e := echo.New()
	deps := Deps{
		Account: &AccountHTTP{Svc: &service.AccountService{Repo: rp, JWTSecret: testSecret, Producer: producer}},
		Admin:   &AdminHTTP{Svc: &service.AccountService{Repo: rp, JWTSecret: testSecret, Producer: producer}},
		Product: &ProductHTTP{Svc: &service.CatalogService{Repo: rp, Producer: producer, Search: index}},
		Image:   &ImageHTTP{Svc: &service.ImageService{Repo: rp}},
		Mail:    &MailHTTP{Svc: &service.MailService{Mailer: mailer, To: "shop@example.com"}},
		Auth:    authmw.New(testSecret),
	}
	Register(e, &deps)

	return &testEnv{T: t, E: e, DB: db, Mailer: mailer}
}

// do runs a request through the full router, middleware gates included.
func (env *testEnv) do(method, target string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *testEnv) createAdmin(email string) (*models.Admin, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("Secret123")
	require.NoError(env.T, err)

	admin := models.Admin{Email: email, PasswordHash: pwHash}
	require.NoError(env.T, env.DB.Create(&admin).Error)

	token, err := tokens.Sign(admin.ID, admin.Email, tokens.RoleAdmin, testSecret)
	require.NoError(env.T, err)
	return &admin, token
}

func (env *testEnv) createUser(email string) (*models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("Secret123")
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: pwHash}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, err := tokens.Sign(user.ID, user.Email, tokens.RoleUser, testSecret)
	require.NoError(env.T, err)
	return &user, token
}

// createProduct inserts a product with an explicit creation time so
// pagination order is deterministic.
func (env *testEnv) createProduct(adminID uuid.UUID, name string, createdAt time.Time) *models.Product {
	env.T.Helper()

	product := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     10,
		AdminID:   adminID,
		CreatedAt: createdAt,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func baseTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")
	require.NoError(t, err)
	return ts
}
