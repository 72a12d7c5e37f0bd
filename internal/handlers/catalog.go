package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/catalog"
	"github.com/lustrahome/shop/internal/models"
	"github.com/lustrahome/shop/internal/util"
)

type CatalogHandler struct {
	DB *gorm.DB
}

// GetCatalog loads the product collection, applies the in-memory filter
// engine with a state seeded from the query string, and paginates the
// result. Category narrows the supply before the engine runs; the engine
// itself carries no category predicate.
func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	state := catalog.StateFromQuery(c.QueryParams())

	q := h.DB.Model(&models.Product{}).Order("id ASC")
	if state.Category != "" {
		q = q.Where("category = ?", state.Category)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filtered := catalog.Filter(products, state)

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": filtered[offset:end],
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
		},
	})
}
