package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/divvyhq/divvy/internal/models"
)

// CreateExpense persists a new expense and its per-member shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, amount, currency, paid_by, split_method, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Title, expense.Amount, expense.Currency,
		expense.PaidBy, string(expense.SplitMethod), expense.Notes, expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for userID, share := range expense.SplitDetails {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, share) VALUES (?, ?, ?)",
			expense.ID, userID, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense within a group, including its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var method string
	var notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, amount, currency, paid_by, split_method, notes, date, created_at
		 FROM expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Title, &expense.Amount, &expense.Currency,
		&expense.PaidBy, &method, &notes, &expense.Date, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.SplitMethod = models.SplitMethod(method)
	if notes.Valid {
		expense.Notes = notes.String
	}

	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, share FROM expense_shares WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	expense.SplitDetails = make(map[string]float64)
	for rows.Next() {
		var userID string
		var share float64
		if err := rows.Scan(&userID, &share); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		expense.SplitDetails[userID] = share
		expense.SplitBetween = append(expense.SplitBetween, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	// Computation never depends on the order, but API responses should be
	// stable across reads.
	sort.Strings(expense.SplitBetween)
	return nil
}

// UpdateExpense replaces all fields of an existing expense, shares included.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET title = ?, amount = ?, currency = ?, paid_by = ?, split_method = ?, notes = ?, date = ?
		 WHERE id = ? AND group_id = ?`,
		expense.Title, expense.Amount, expense.Currency, expense.PaidBy,
		string(expense.SplitMethod), expense.Notes, expense.Date,
		expense.ID, expense.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense not found: %s", expense.ID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_shares WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense shares: %w", err)
	}
	for userID, share := range expense.SplitDetails {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, share) VALUES (?, ?, ?)",
			expense.ID, userID, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND group_id = ?", expenseID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	return nil
}

// ListExpensesByGroup retrieves a group's expenses ordered by date
// descending, each with its shares.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, amount, currency, paid_by, split_method, notes, date, created_at
		 FROM expenses WHERE group_id = ? ORDER BY date DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var method string
		var notes sql.NullString
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Title, &expense.Amount,
			&expense.Currency, &expense.PaidBy, &method, &notes, &expense.Date, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.SplitMethod = models.SplitMethod(method)
		if notes.Valid {
			expense.Notes = notes.String
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadShares(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}
