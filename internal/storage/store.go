// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitpay/splitpay/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger persistence. The abstraction keeps
// the service layer independent of the backend (SQLite today, anything
// SQL-shaped tomorrow).
type Store interface {
	// CreateUser persists a new user. Fails if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or (nil, nil) if no such
	// user exists. Lookups by email are how group invitations resolve.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if missing.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its initial members.
	// ID and CreatedAt are populated by the store if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members. Returns ErrNotFound if
	// missing.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByUser retrieves all groups the user belongs to, most
	// recently updated first.
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Adding an existing member is a
	// no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// CreateExpense persists an expense with its shares and touches the
	// group's UpdatedAt. ID and CreatedAt are populated if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its shares. Returns ErrNotFound
	// if missing.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense rewrites an expense's description and amount. Shares are
	// immutable once created.
	UpdateExpense(ctx context.Context, expenseID, description string, amount float64) error

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup retrieves a group's expenses, newest first, with
	// the payer's display name denormalized onto PaidBy.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// ListRecentExpenses retrieves the newest expenses across every group
	// the user belongs to.
	ListRecentExpenses(ctx context.Context, userID string, limit int) ([]models.Expense, error)

	// CreateManualReport persists a saved manual-calculator run.
	CreateManualReport(ctx context.Context, report *models.ManualReport) error

	// ListManualReports retrieves the user's saved reports, newest first.
	ListManualReports(ctx context.Context, userID string) ([]models.ManualReport, error)

	// Close releases any resources held by the store.
	Close() error
}
