package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/cart"
	"github.com/lustrahome/shop/internal/config"
	"github.com/lustrahome/shop/internal/favorites"
	"github.com/lustrahome/shop/internal/models"
	"github.com/lustrahome/shop/internal/service/token"
	"github.com/lustrahome/shop/internal/storage"
)

type testEnv struct {
	T             *testing.T
	E             *echo.Echo
	DB            *gorm.DB
	Blobs         storage.BlobStore
	Carts         *cart.Manager
	Favs          *favorites.Manager
	JWTSecret     []byte
	RefreshSecret []byte

	A   *AuthHandler
	P   *ProductHandler
	Cat *CatalogHandler
	C   *CartHandler
	F   *FavoritesHandler
	O   *OrderHandler
	Ch  *ChatHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	jwtSecret := []byte("test-jwt-secret")
	refreshSecret := []byte("test-refresh-secret")

	blobs := storage.NewGormBlobStore(db)
	carts := cart.NewManager(blobs, nil)
	favs := favorites.NewManager(blobs, nil)

	env := &testEnv{
		T:             t,
		E:             echo.New(),
		DB:            db,
		Blobs:         blobs,
		Carts:         carts,
		Favs:          favs,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
	}

	env.A = &AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	env.P = &ProductHandler{DB: db, JWTSecret: jwtSecret}
	env.Cat = &CatalogHandler{DB: db}
	env.C = &CartHandler{DB: db, Carts: carts, JWTSecret: jwtSecret}
	env.F = &FavoritesHandler{Favorites: favs, JWTSecret: jwtSecret}
	env.O = &OrderHandler{DB: db, Carts: carts, JWTSecret: jwtSecret}
	env.Ch = &ChatHandler{DB: db}

	return env
}

func (env *testEnv) doJSONRequest(method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) accessCookie(userID uint, role string) *http.Cookie {
	env.T.Helper()

	tok, err := token.SignAccessToken(userID, role, env.JWTSecret)
	require.NoError(env.T, err)
	return &http.Cookie{
		Name:    "accessToken",
		Value:   tok,
		Path:    "/",
		Expires: time.Now().Add(token.AccessTTL),
	}
}

func (env *testEnv) createProduct(p models.Product) models.Product {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he
}
