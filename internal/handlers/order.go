package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/cart"
	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/models"
)

type OrderHandler struct {
	DB        *gorm.DB
	Carts     *cart.Manager
	Producer  *events.Producer
	JWTSecret []byte
}

// MakeOrder builds an order from the cart snapshot plus the customer's
// checkout fields. Item prices come from the cart lines, not the live
// catalog. The cart is cleared only after the transaction commits.
func (h *OrderHandler) MakeOrder(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		CustomerName    string `json:"customer_name"`
		CustomerEmail   string `json:"customer_email"`
		CustomerPhone   string `json:"customer_phone"`
		CustomerAddress string `json:"customer_address"`
		PaymentMethod   string `json:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.CustomerAddress == "" || req.CustomerPhone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "delivery address and phone are required")
	}

	store := h.Carts.ForUser(userID)
	lines := store.Lines()
	if len(lines) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}

	var total int64
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
	}

	order := models.Order{
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Total:           total,
		Status:          "new",
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       time.Now().Unix(),
	}

	var orderItems []models.OrderItem
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderItems = make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			oi := models.OrderItem{
				OrderID:      order.ID,
				UserID:       userID,
				ProductID:    l.ProductID,
				ProductName:  l.Name,
				ProductImage: l.Image,
				Quantity:     l.Quantity,
				Price:        l.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}
		return nil
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	store.Clear()

	publish(c, h.Producer, "order_events", map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"order_id": order.ID,
		"total":    order.Total,
		"status":   order.Status,
		"items":    orderItems,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	var items []models.OrderItem
	if err := h.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"order": order,
		"items": items,
	})
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.Order("created_at DESC").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	order.Status = req.Status
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":    "order_status_updated",
		"userID":  order.UserID,
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
