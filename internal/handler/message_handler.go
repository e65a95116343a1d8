package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wrenfeed/social-api/internal/middleware"
	"github.com/wrenfeed/social-api/internal/models"
)

// MessageManager defines the message operations used by MessageHandler.
type MessageManager interface {
	Create(candidate *models.Message) (*models.Message, error)
	GetByID(id int) (*models.Message, error)
	GetAll() ([]models.Message, error)
	GetByAccount(accountID int) ([]models.Message, error)
	UpdateText(id int, patch *models.Message) (*models.Message, error)
	DeleteByID(id int) error
}

type MessageHandler struct {
	messages MessageManager
}

type CreateMessageRequest struct {
	PostedBy      int    `json:"posted_by"`
	Text          string `json:"message_text" validate:"required,max=255"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}

type UpdateMessageRequest struct {
	Text string `json:"message_text" validate:"required,max=255"`
}

func NewMessageHandler(messages MessageManager) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	message, err := h.messages.Create(&models.Message{
		PostedBy:      req.PostedBy,
		Text:          req.Text,
		PostedAtEpoch: req.PostedAtEpoch,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to create message")
		return
	}
	if message == nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message")
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	messages, err := h.messages.GetAll()
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetMessageByID returns 200 with an empty body when the message is absent.
func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	message, err := h.messages.GetByID(id)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to get message")
		return
	}
	if message == nil {
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, message)
}

// DeleteMessage returns the deleted message when it existed, otherwise 200
// with an empty body. The operation itself is idempotent.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	existing, err := h.messages.GetByID(id)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to get message")
		return
	}
	if existing == nil {
		c.Status(http.StatusOK)
		return
	}

	if err := h.messages.DeleteByID(id); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to delete message")
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *MessageHandler) UpdateMessageText(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	message, err := h.messages.UpdateText(id, &models.Message{Text: req.Text})
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to update message")
		return
	}
	if message == nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message update")
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) GetMessagesByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return
	}

	messages, err := h.messages.GetByAccount(accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// pathID parses an integer path parameter, answering 400 itself when the
// value is not a valid integer.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
