package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lustrahome/shop/internal/models"
)

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(models.Product{Name: "Люстра Vega", Price: 1500000})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/"+strconv.Itoa(p.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(p.ID))
	require.NoError(t, env.P.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "Люстра Vega", got.Name)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	he := httpError(t, env.P.GetProduct(c))
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetProductsPaginationMeta(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		env.createProduct(models.Product{Name: "Светильник " + strconv.Itoa(i+1), Price: int64(100000 * (i + 1))})
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?page=2&size=2", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, "Светильник 3", body.Data[0].Name)
	require.Equal(t, int64(5), body.Meta.Total)
	require.Equal(t, int64(3), body.Meta.TotalPages)
	require.True(t, body.Meta.HasPrev)
	require.True(t, body.Meta.HasNext)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]any{
		"name":     "Подвес Loft",
		"brand":    "Lumion",
		"price":    950000,
		"category": "pendants",
		"style":    "loft",
		"height":   35.5,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", load)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotZero(t, got.ID)
	require.Equal(t, int64(950000), got.Price)
	require.NotNil(t, got.Style)
	require.Equal(t, "loft", *got.Style)
	require.NotNil(t, got.Height)
	require.InDelta(t, 35.5, *got.Height, 0.001)
}

func TestCreateProductRejectsMissingName(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]any{"price": 100000}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", load)
	he := httpError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(models.Product{Name: "Бра Lund", Price: 500000, Category: "sconces"})

	load := map[string]any{
		"name":     "Бра Lund II",
		"price":    550000,
		"category": "sconces",
		"is_sale":  true,
	}
	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/products/"+strconv.Itoa(p.ID), load)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(p.ID))
	require.NoError(t, env.P.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, p.ID).Error)
	require.Equal(t, "Бра Lund II", stored.Name)
	require.Equal(t, int64(550000), stored.Price)
	require.True(t, stored.IsSale)
}

func TestPatchProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/products/42", map[string]any{"name": "x"})
	c.SetParamNames("id")
	c.SetParamValues("42")
	he := httpError(t, env.P.PatchProduct(c))
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(models.Product{Name: "Бра Lund", Price: 500000})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/products/"+strconv.Itoa(p.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(p.ID))
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	err := env.DB.First(&models.Product{}, p.ID).Error
	require.Error(t, err)
}
