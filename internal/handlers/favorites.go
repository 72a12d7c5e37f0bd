package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/favorites"
)

type FavoritesHandler struct {
	Favorites *favorites.Manager
	Producer  *events.Producer
	JWTSecret []byte
}

func (h *FavoritesHandler) GetFavorites(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ids": h.Favorites.ForUser(userID).IDs(),
	})
}

func (h *FavoritesHandler) ToggleFavorite(c echo.Context) error {
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

	store := h.Favorites.ForUser(userID)
	added := store.Toggle(req.ProductID)

	publish(c, h.Producer, "user_events", map[string]any{
		"type":      "favorite_toggled",
		"userID":    userID,
		"productID": req.ProductID,
		"favorite":  added,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"favorite": added,
		"ids":      store.IDs(),
	})
}
