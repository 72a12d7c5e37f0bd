package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/cart"
	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/models"
)

type CartHandler struct {
	DB        *gorm.DB
	Carts     *cart.Manager
	Producer  *events.Producer
	JWTSecret []byte
}

func cartResponse(s *cart.Store) echo.Map {
	return echo.Map{
		"items":       s.Lines(),
		"total_items": s.TotalItems(),
		"total_price": s.TotalPrice(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(h.Carts.ForUser(userID)))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	store := h.Carts.ForUser(userID)
	line := store.Add(product)

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": line.ProductID,
		"quantity":  line.Quantity,
	})

	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store := h.Carts.ForUser(userID)
	store.SetQuantity(req.ProductID, req.Quantity)

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_quantity_updated",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	store := h.Carts.ForUser(userID)
	store.Remove(id)

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": id,
	})

	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	store := h.Carts.ForUser(userID)
	store.Clear()

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return c.JSON(http.StatusOK, cartResponse(store))
}
