package repository

import (
	"database/sql"
	"fmt"

	"github.com/wrenfeed/social-api/internal/models"
	"github.com/wrenfeed/social-api/internal/service"
)

// AccountRepository persists accounts in the account table. It carries no
// business rules: uniqueness and password checks happen in the service layer.
type AccountRepository struct {
	db *sql.DB
}

var _ service.AccountStore = (*AccountRepository)(nil)

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByCredentials returns the account matching both username and password,
// or nil when there is no exact match.
func (r *AccountRepository) FindByCredentials(username, password string) (*models.Account, error) {
	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1 AND password = $2
	`
	var account models.Account
	err := r.db.QueryRow(query, username, password).Scan(
		&account.ID, &account.Username, &account.Password,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by credentials: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) FindByUsername(username string) (*models.Account, error) {
	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1
	`
	var account models.Account
	err := r.db.QueryRow(query, username).Scan(
		&account.ID, &account.Username, &account.Password,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by username: %w", err)
	}
	return &account, nil
}

// ExistsByID is the authorship probe used before inserting a message.
func (r *AccountRepository) ExistsByID(id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM account WHERE account_id = $1)`
	var exists bool
	if err := r.db.QueryRow(query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

// Insert stores the account and returns a copy carrying the generated id.
func (r *AccountRepository) Insert(account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`
	created := *account
	err := r.db.QueryRow(query, account.Username, account.Password).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}
	return &created, nil
}
