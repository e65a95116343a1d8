package repository

import (
	"database/sql"
	"fmt"

	"github.com/wrenfeed/social-api/internal/models"
	"github.com/wrenfeed/social-api/internal/service"
)

// MessageRepository persists messages in the message table.
type MessageRepository struct {
	db *sql.DB
}

var _ service.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) FindByID(id int) (*models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`
	var message models.Message
	err := r.db.QueryRow(query, id).Scan(
		&message.ID, &message.PostedBy, &message.Text, &message.PostedAtEpoch,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) FindAll() ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		ORDER BY message_id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// FindAllByAccount returns the account's messages in storage order. The
// result is always a non-nil slice.
func (r *MessageRepository) FindAllByAccount(accountID int) ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
		ORDER BY message_id
	`
	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages by account: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// Insert stores the message and returns a copy carrying the generated id.
func (r *MessageRepository) Insert(message *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`
	created := *message
	err := r.db.QueryRow(query, message.PostedBy, message.Text, message.PostedAtEpoch).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return &created, nil
}

// UpdateText overwrites the text of the identified message and reports how
// many rows changed. Zero means no such id.
func (r *MessageRepository) UpdateText(id int, text string) (int64, error) {
	query := `UPDATE message SET message_text = $2 WHERE message_id = $1`
	result, err := r.db.Exec(query, id, text)
	if err != nil {
		return 0, fmt.Errorf("failed to update message text: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

func (r *MessageRepository) DeleteByID(id int) (int64, error) {
	query := `DELETE FROM message WHERE message_id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(&message.ID, &message.PostedBy, &message.Text, &message.PostedAtEpoch); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}
