// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/divvyhq/divvy/internal/models"
)

// Store defines the persistence operations the services depend on. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Balances and settlements are deliberately absent: they are derived views
// recomputed from the expense list on every request.
type Store interface {
	// CreateUser persists a new user. The caller supplies the ID.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or (nil, nil) if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, or (nil, nil) if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID; missing users are
	// omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// UpdateUserCurrency changes a user's preferred display currency.
	UpdateUserCurrency(ctx context.Context, userID, code string) error

	// CreateGroup persists a new group and its member list. ID, invite code
	// and CreatedAt are populated if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByInviteCode retrieves a group by its shareable code.
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)

	// ListGroupsByMember retrieves all groups a user belongs to, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Adding an existing member is a
	// no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes a user from a group.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// DeleteGroup removes a group, its memberships and its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense with its shares. The expense ID
	// and CreatedAt are populated if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense within a group.
	GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces all fields of an existing expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense from a group.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// ListExpensesByGroup retrieves a group's expenses ordered by date
	// descending.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
