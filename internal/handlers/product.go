package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/models"
	"github.com/lustrahome/shop/internal/util"
)

type ProductHandler struct {
	DB        *gorm.DB
	Producer  *events.Producer
	JWTSecret []byte

	// Reindex coalesces admin writes into one search reindex notification
	// per editing burst.
	Reindex *util.Debouncer
}

func (h *ProductHandler) reindex() {
	if h.Reindex != nil {
		h.Reindex.Trigger()
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

type productRequest struct {
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	Price           int64    `json:"price"`
	Image           string   `json:"image"`
	InStock         bool     `json:"in_stock"`
	HasRemote       bool     `json:"has_remote"`
	IsDimmable      bool     `json:"is_dimmable"`
	HasColorChange  bool     `json:"has_color_change"`
	IsSale          bool     `json:"is_sale"`
	IsNew           bool     `json:"is_new"`
	PickupAvailable bool     `json:"pickup_available"`
	Style           *string  `json:"style"`
	Color           *string  `json:"color"`
	Category        string   `json:"category"`
	Height          *float64 `json:"height"`
	Length          *float64 `json:"length"`
	Width           *float64 `json:"width"`
	Depth           *float64 `json:"depth"`
	Diameter        *float64 `json:"diameter"`
	ChainLength     *float64 `json:"chain_length"`
}

func (r *productRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.Brand = r.Brand
	p.Type = r.Type
	p.Description = r.Description
	p.Price = r.Price
	p.Image = r.Image
	p.InStock = r.InStock
	p.HasRemote = r.HasRemote
	p.IsDimmable = r.IsDimmable
	p.HasColorChange = r.HasColorChange
	p.IsSale = r.IsSale
	p.IsNew = r.IsNew
	p.PickupAvailable = r.PickupAvailable
	p.Style = r.Style
	p.Color = r.Color
	p.Category = r.Category
	p.Height = r.Height
	p.Length = r.Length
	p.Width = r.Width
	p.Depth = r.Depth
	p.Diameter = r.Diameter
	p.ChainLength = r.ChainLength
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required and price must be non-negative")
	}

	var prod models.Product
	req.apply(&prod)
	if err := h.DB.Create(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.reindex()

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.apply(&prod)
	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.reindex()

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	h.reindex()

	return c.NoContent(http.StatusNoContent)
}
