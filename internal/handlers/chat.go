package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/models"
)

type ChatHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *ChatHandler) StartSession(c echo.Context) error {
	var req struct {
		UserName string `json:"user_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session := models.ChatSession{
		ID:        uuid.NewString(),
		UserName:  req.UserName,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "chat_events", map[string]any{
		"type":      "chat_session_started",
		"sessionID": session.ID,
	})

	return c.JSON(http.StatusCreated, session)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id required")
	}

	var messages []models.ChatMessage
	err := h.DB.Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	sessionID := c.Param("id")

	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	var session models.ChatSession
	if err := h.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	msg := models.ChatMessage{
		SessionID: session.ID,
		Sender:    "user",
		Text:      req.Text,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err := h.DB.Model(&session).
		Update("unread_count", gorm.Expr("unread_count + 1")).Error
	if err != nil {
		c.Logger().Errorf("chat unread counter update error: %v", err)
	}

	publish(c, h.Producer, "chat_events", map[string]any{
		"type":      "chat_message",
		"sessionID": session.ID,
		"sender":    msg.Sender,
	})

	return c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) ListSessions(c echo.Context) error {
	var sessions []models.ChatSession
	if err := h.DB.Order("created_at DESC").Find(&sessions).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

// Reply posts an admin message and marks the session's user messages read.
func (h *ChatHandler) Reply(c echo.Context) error {
	sessionID := c.Param("id")

	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	var session models.ChatSession
	if err := h.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	msg := models.ChatMessage{
		SessionID: session.ID,
		Sender:    "admin",
		Text:      req.Text,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err := h.DB.Model(&models.ChatMessage{}).
		Where("session_id = ? AND sender = ?", session.ID, "user").
		Update("read", true).Error
	if err != nil {
		c.Logger().Errorf("chat mark-read error: %v", err)
	}
	if err := h.DB.Model(&session).Update("unread_count", 0).Error; err != nil {
		c.Logger().Errorf("chat unread counter reset error: %v", err)
	}

	publish(c, h.Producer, "chat_events", map[string]any{
		"type":      "chat_message",
		"sessionID": session.ID,
		"sender":    msg.Sender,
	})

	return c.JSON(http.StatusCreated, msg)
}
