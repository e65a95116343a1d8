package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/wrenfeed/social-api/internal/events"
	"github.com/wrenfeed/social-api/internal/models"
)

// MessageStore is the persistence contract for messages. As with
// AccountStore, absence is a nil value with a nil error.
type MessageStore interface {
	FindByID(id int) (*models.Message, error)
	FindAll() ([]models.Message, error)
	FindAllByAccount(accountID int) ([]models.Message, error)
	Insert(message *models.Message) (*models.Message, error)
	UpdateText(id int, text string) (int64, error)
	DeleteByID(id int) (int64, error)
}

// AuthorStore is the slice of the account store the message service needs to
// enforce that a message's author exists.
type AuthorStore interface {
	ExistsByID(id int) (bool, error)
}

const maxMessageLen = 255

// MessageService enforces the message business rules: non-blank text of at
// most 255 characters, and an author that exists at creation time.
type MessageService struct {
	store     MessageStore
	authors   AuthorStore
	publisher EventPublisher
	log       *logrus.Logger
}

func NewMessageService(store MessageStore, authors AuthorStore, publisher EventPublisher, log *logrus.Logger) *MessageService {
	return &MessageService{store: store, authors: authors, publisher: publisher, log: log}
}

// Create validates and persists a new message. The author probe and the
// insert are separate store calls; accounts are never deleted, so the author
// cannot vanish between the two.
func (s *MessageService) Create(candidate *models.Message) (*models.Message, error) {
	if !validText(candidate.Text) {
		return nil, nil
	}

	exists, err := s.authors.ExistsByID(candidate.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if !exists {
		return nil, nil
	}

	created, err := s.store.Insert(candidate)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	s.publish(events.MessageCreated, events.MessageCreatedEvent{
		MessageID: created.ID,
		PostedBy:  created.PostedBy,
	})
	return created, nil
}

func (s *MessageService) GetByID(id int) (*models.Message, error) {
	message, err := s.store.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return message, nil
}

func (s *MessageService) GetAll() ([]models.Message, error) {
	messages, err := s.store.FindAll()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// GetByAccount returns the account's messages. An unknown account or one
// with no messages yields an empty slice, never an error.
func (s *MessageService) GetByAccount(accountID int) ([]models.Message, error) {
	messages, err := s.store.FindAllByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("list messages by account: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// UpdateText overwrites only the text of an existing message. PostedBy and
// PostedAtEpoch always come from the stored record, not from the patch.
func (s *MessageService) UpdateText(id int, patch *models.Message) (*models.Message, error) {
	if !validText(patch.Text) {
		return nil, nil
	}

	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	rows, err := s.store.UpdateText(id, patch.Text)
	if err != nil {
		return nil, fmt.Errorf("update message text: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	existing.Text = patch.Text
	s.publish(events.MessageUpdated, events.MessageUpdatedEvent{MessageID: id})
	return existing, nil
}

// DeleteByID removes a message. Deleting a missing id is a no-op, not an
// error; reporting absence to the client is the request layer's job.
func (s *MessageService) DeleteByID(id int) error {
	rows, err := s.store.DeleteByID(id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if rows > 0 {
		s.publish(events.MessageDeleted, events.MessageDeletedEvent{MessageID: id})
	}
	return nil
}

func (s *MessageService) publish(eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.MessageEventsStream, eventType, data); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("event publish failed")
	}
}

// validText reports whether text is non-blank and at most 255 characters.
// Length is counted in runes to match the VARCHAR(255) column.
func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) <= maxMessageLen
}
