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

// AccountStore is the persistence contract the services depend on for
// accounts. Absence is reported as a nil value with a nil error; a non-nil
// error always means the store itself failed.
type AccountStore interface {
	FindByCredentials(username, password string) (*models.Account, error)
	FindByUsername(username string) (*models.Account, error)
	ExistsByID(id int) (bool, error)
	Insert(account *models.Account) (*models.Account, error)
}

// EventPublisher pushes domain events onto a stream. Publishing is
// best-effort: services log failures and never let them change an outcome.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

const minPasswordLen = 4

// AccountService enforces the account business rules before touching the
// store. Rejected input is signalled by a nil account with a nil error.
type AccountService struct {
	store     AccountStore
	publisher EventPublisher
	log       *logrus.Logger
}

func NewAccountService(store AccountStore, publisher EventPublisher, log *logrus.Logger) *AccountService {
	return &AccountService{store: store, publisher: publisher, log: log}
}

// Register validates and persists a new account. It rejects a blank username,
// a password shorter than four characters, and a username that is already
// taken. On success the returned account carries its generated id.
func (s *AccountService) Register(candidate *models.Account) (*models.Account, error) {
	if strings.TrimSpace(candidate.Username) == "" || utf8.RuneCountInString(candidate.Password) < minPasswordLen {
		return nil, nil
	}

	existing, err := s.store.FindByUsername(candidate.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	created, err := s.store.Insert(candidate)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	s.publish(events.AccountEventsStream, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID: created.ID,
		Username:  created.Username,
	})
	return created, nil
}

// Login returns the stored account matching both username and password.
// Unknown username and wrong password are indistinguishable on purpose.
func (s *AccountService) Login(credentials *models.Account) (*models.Account, error) {
	account, err := s.store.FindByCredentials(credentials.Username, credentials.Password)
	if err != nil {
		return nil, fmt.Errorf("find by credentials: %w", err)
	}
	return account, nil
}

func (s *AccountService) publish(stream, eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), stream, eventType, data); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("event publish failed")
	}
}
